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

	"github.com/gnames/gn"
	"github.com/gnames/gnspace/internal/ioseed"
	"github.com/spf13/cobra"
)

func getSeedCmd() *cobra.Command {
	var reset bool

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample planets, scientists and missions",
		Long: `Load the sample records shipped with gnspace into the
configured store. Missing tables are created first.

Records are added to existing ones. Use --reset to drop all tables
and start from an empty database.

Examples:
  gnspace seed
  gnspace seed --reset`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, storePathFlag)
			return runSeed(reset, true)
		},
	}

	seedCmd.Flags().BoolVar(&reset, "reset", false,
		"drop existing tables and data before loading")
	seedCmd.Flags().String("db", "", "SQLite database file")

	return seedCmd
}

func runSeed(reset, progress bool) error {
	ctx := context.Background()

	fx, err := ioseed.Default()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if reset {
		if err = resetTables(ctx); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer st.Close()

	if _, err = ioseed.Load(ctx, st, fx, progress); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func resetTables(ctx context.Context) error {
	tbl, err := openTables(ctx, cfg)
	if err != nil {
		return err
	}
	defer tbl.Close()

	gn.Info("Dropping all existing tables (--reset enabled)...")
	return tbl.DropAllTables(ctx)
}
