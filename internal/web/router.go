// Package web builds the gin engine shared by the authority and the edge:
// middleware, the login and catalog pages, the protected catalog API and
// the health check. The two deployables differ only in the verifier and in
// how /api/auth is served.
package web

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/catalog"
	"github.com/dmitrijs2005/pokegate/internal/gate"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

const (
	LoginPagePath = "/login"
	HomePagePath  = "/pokemon"
)

// Options configures the router builder.
type Options struct {
	Logger   logging.Logger
	Verifier session.Verifier
	Catalog  catalog.Catalog

	// AuthRoutes mounts login, logout and status on the /api/auth group.
	AuthRoutes func(rg *gin.RouterGroup)

	// ProtectedPrefixes are checked by the edge interceptor before routing.
	ProtectedPrefixes []string

	// AllowedOrigins enables CORS with credentials for the listed origins.
	// Empty means same-origin only.
	AllowedOrigins []string

	// AssetsDir is served under /assets when set.
	AssetsDir string

	Debug bool
}

// Router bundles the gin engine, the API group and the final handler.
type Router struct {
	Engine *gin.Engine
	API    *gin.RouterGroup

	// Handler is the engine wrapped in request-id and edge interception;
	// it is what the http.Server serves.
	Handler http.Handler
}

// Build constructs the engine with recovery, access logging, CORS, the
// page routes and the API routes.
func Build(opts Options) (*Router, error) {
	if opts.Logger == nil {
		return nil, errors.New("http router requires a logger")
	}
	if opts.Verifier == nil {
		return nil, errors.New("http router requires a session verifier")
	}
	if opts.Catalog == nil {
		return nil, errors.New("http router requires a catalog")
	}
	if opts.AuthRoutes == nil {
		return nil, errors.New("http router requires auth routes")
	}

	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := opts.Logger.With("module", "http")

	engine := gin.New()
	engine.Use(recoveryMiddleware(logger))
	engine.Use(loggingMiddleware(logger))
	if err := engine.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	if len(opts.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if opts.AssetsDir != "" {
		engine.Use(static.Serve("/assets", static.LocalFile(opts.AssetsDir, false)))
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pages := &pageHandler{catalog: opts.Catalog, logger: logger}
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, HomePagePath)
	})
	engine.GET(LoginPagePath, gate.GuestOnly(opts.Verifier, HomePagePath), pages.login)

	gated := engine.Group("", gate.Page(opts.Verifier, LoginPagePath, logger))
	gated.GET(HomePagePath, pages.list)
	gated.GET(HomePagePath+"/:name", pages.detail)

	api := engine.Group("/api")
	opts.AuthRoutes(api.Group("/auth"))

	secured := api.Group("/pokemon", gate.API(opts.Verifier, logger))
	catalogAPI := &catalogHandler{catalog: opts.Catalog, logger: logger}
	secured.GET("", catalogAPI.list)
	secured.GET("/:name", catalogAPI.get)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	var handler http.Handler = engine
	if len(opts.ProtectedPrefixes) > 0 {
		handler = gate.Edge(opts.Verifier, opts.ProtectedPrefixes, logger)(handler)
	}
	handler = RequestID(handler)

	return &Router{Engine: engine, API: api, Handler: handler}, nil
}
