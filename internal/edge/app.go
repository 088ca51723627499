// Package edge wires the public edge of the split deployment. It holds no
// signing secret: sessions are checked by asking the authority, and the
// auth endpoints are proxied to it.
package edge

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/edge/config"
	"github.com/dmitrijs2005/pokegate/internal/edge/proxy"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/netx"
	"github.com/dmitrijs2005/pokegate/internal/session"
	"github.com/dmitrijs2005/pokegate/internal/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	client := netx.NewClient(c.AuthorityTimeout)

	verifier, err := session.NewDelegatingVerifier(c.AuthorityURL, c.AuthorityTimeout, client, logger.With("module", "session"))
	if err != nil {
		return nil, err
	}

	px, err := proxy.New(c.AuthorityURL, client, c.AuthorityTimeout, logger.With("module", "proxy"))
	if err != nil {
		return nil, err
	}

	cat, err := catalog.NewClient(c.CatalogBaseURL, nil)
	if err != nil {
		return nil, err
	}

	router, err := web.Build(web.Options{
		Logger:            logger,
		Verifier:          verifier,
		Catalog:           cat,
		AuthRoutes:        px.Register,
		ProtectedPrefixes: c.ProtectedPrefixes,
		AllowedOrigins:    c.AllowedOrigins,
		AssetsDir:         c.AssetsDir,
		Debug:             c.LogLevel == "debug",
	})
	if err != nil {
		return nil, fmt.Errorf("http router init error: %w", err)
	}

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           router.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{config: c, logger: logger, server: srv}, nil
}

// Handler exposes the root handler, mainly for tests.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting edge...", "addr", app.config.Addr, "authority", app.config.AuthorityURL)

	stop := netx.CancelOnSignal(cancelFunc)
	defer stop()

	return netx.Serve(ctx, app.server, app.config.ShutdownTimeout, app.logger)
}
