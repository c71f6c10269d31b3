package iohttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gnspace/pkg/config"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout is how long Run waits for active requests to finish.
const ShutdownTimeout = 10 * time.Second

// NewServer creates an HTTP server listening on cfg.Port.
func NewServer(cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
}

// Run serves until ctx is canceled, then shuts the server down
// gracefully. It also returns when the server fails to start.
func Run(ctx context.Context, srv *http.Server) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server", "addr", srv.Addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return ServerError(srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("Shutting down HTTP server", "addr", srv.Addr)
		shutCtx, cancel := context.WithTimeout(
			context.Background(), ShutdownTimeout,
		)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			return ServerError(srv.Addr, err)
		}
		return nil
	})

	return g.Wait()
}
