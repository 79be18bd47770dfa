package api

import (
	"fmt"
	"net/http"

	"github.com/Togather-Foundation/beeps/internal/api/handlers"
	"github.com/Togather-Foundation/beeps/internal/api/middleware"
	"github.com/Togather-Foundation/beeps/internal/api/render"
	"github.com/Togather-Foundation/beeps/internal/audit"
	"github.com/Togather-Foundation/beeps/internal/auth"
	"github.com/Togather-Foundation/beeps/internal/config"
	"github.com/Togather-Foundation/beeps/internal/domain/beeps"
	"github.com/Togather-Foundation/beeps/internal/metrics"
	"github.com/Togather-Foundation/beeps/web"
	"github.com/rs/zerolog"
)

// Router is the assembled HTTP surface.
type Router struct {
	Handler http.Handler
	Log     *beeps.Log
}

// NewRouter wires the beeps handlers onto a mux and wraps it in the
// middleware chain. log is shared with the caller so other components (the
// health check, the serve command) observe the same beeps.
func NewRouter(cfg config.Config, logger zerolog.Logger, log *beeps.Log, build BuildInfo) (*Router, error) {
	if log == nil {
		log = beeps.NewLog()
	}

	assets, err := web.EmbeddedAssets()
	if err != nil {
		return nil, fmt.Errorf("load assets: %w", err)
	}
	renderer, err := render.New(assets)
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	beepsHandler := handlers.NewBeepsHandler(
		log,
		auth.NewSecret(cfg.Auth.Secret),
		beeps.NewTextPolicy(cfg.Beeps.MaxTextLength),
		renderer,
		cfg.Environment,
	)
	beepsHandler.Audit = audit.NewLogger(logger)
	healthChecker := handlers.NewHealthChecker(log, build.Version, build.GitCommit)
	notFound := http.HandlerFunc(beepsHandler.NotFound)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", beepsHandler.Home)
	mux.Handle("POST /beeps", middleware.RequestSize(middleware.DefaultMaxBodySize)(http.HandlerFunc(beepsHandler.Create)))
	mux.Handle("GET /static/{filename}", web.StaticHandler(assets, notFound))
	mux.Handle("GET /robots.txt", web.RobotsTxtHandler())
	mux.Handle("GET /health", healthChecker.Health())
	mux.Handle("GET /healthz", handlers.Healthz())
	mux.Handle("GET /readyz", handlers.Readyz())
	mux.Handle("GET /version", VersionHandler(build))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /api/openapi.json", OpenAPIHandler())
	// Everything else, including wrong methods on known paths, gets the
	// same page a refused beep does.
	mux.Handle("/", notFound)

	compress, err := middleware.Compress()
	if err != nil {
		return nil, fmt.Errorf("init compression: %w", err)
	}

	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = compress(handler)
	handler = middleware.SecurityHeaders(cfg.Environment == "production")(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	handler = middleware.Tracing(handler)

	return &Router{Handler: handler, Log: log}, nil
}
