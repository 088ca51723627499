// Package netx holds the HTTP plumbing shared by the authority and the
// edge: running a server with graceful shutdown and building outbound
// clients.
package netx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Serve listens on srv.Addr and serves until ctx is cancelled, then shuts
// down, giving in-flight requests up to grace to finish.
func Serve(ctx context.Context, srv *http.Server, grace time.Duration, logger logging.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, srv, ln, grace, logger)
}

// ServeListener is Serve on an already bound listener.
func ServeListener(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration, logger logging.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(gctx, "http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()

		logger.Info(shutdownCtx, "http server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return err
		}
		return nil
	})

	return g.Wait()
}
