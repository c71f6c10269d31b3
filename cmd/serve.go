/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/internal/iohttp"
	"github.com/spf13/cobra"
)

func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the records API over HTTP",
		Long: `Start the HTTP API of the Interplanetary Space Travel Agency.

Missing tables are created on start. The server stops gracefully on
SIGINT or SIGTERM, waiting for active requests to finish.

Examples:
  gnspace serve
  gnspace serve --port 8080
  gnspace serve --db /tmp/space.db`,
		RunE: runServe,
	}

	serveCmd.Flags().IntP("port", "p", 5555, "HTTP port")
	serveCmd.Flags().String("db", "", "SQLite database file")
	return serveCmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	applyFlags(cmd, portFlag, storePathFlag)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	srv := iohttp.NewServer(cfg.Server, iohttp.NewHandler(st))
	gn.Info("Serving API at <em>http://localhost:%d</em>", cfg.Server.Port)

	if err = iohttp.Run(ctx, srv); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Server stopped")
	return nil
}
