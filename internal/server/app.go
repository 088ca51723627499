// Package server wires the authority: it owns the signing secret, issues
// session cookies and serves the gated pages and catalog API with the
// direct verifier.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/netx"
	"github.com/dmitrijs2005/pokegate/internal/server/auth"
	"github.com/dmitrijs2005/pokegate/internal/server/config"
	"github.com/dmitrijs2005/pokegate/internal/server/httpapi"
	"github.com/dmitrijs2005/pokegate/internal/server/users"
	"github.com/dmitrijs2005/pokegate/internal/session"
	"github.com/dmitrijs2005/pokegate/internal/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

// NewApp validates c and builds every component. It fails with
// common.ErrConfiguration when the signing secret is missing.
func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	codec, err := auth.NewCodec([]byte(c.SecretKey))
	if err != nil {
		return nil, err
	}

	cat, err := catalog.NewClient(c.CatalogBaseURL, nil)
	if err != nil {
		return nil, err
	}

	verifier := session.NewDirectVerifier(codec, logger.With("module", "session"))
	us := users.NewService(users.NewValidator(c.Username, c.Password), codec, session.NewCookiePolicy(c.Production))
	handler := httpapi.NewHandler(us, verifier, logger.With("module", "auth"))

	router, err := web.Build(web.Options{
		Logger:            logger,
		Verifier:          verifier,
		Catalog:           cat,
		AuthRoutes:        handler.Register,
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

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting authority...", "addr", app.config.Addr, "production", app.config.Production)

	stop := netx.CancelOnSignal(cancelFunc)
	defer stop()

	return netx.Serve(ctx, app.server, app.config.ShutdownTimeout, app.logger)
}
