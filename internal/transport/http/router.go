package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"pasarcli/internal/brandstore"
	"pasarcli/internal/config"
	apierrors "pasarcli/internal/errors"
	custommw "pasarcli/internal/middleware"
	"pasarcli/internal/progress"
	"pasarcli/internal/services"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// RouterDeps carries everything the router needs. MetricsHandler may be
// nil, in which case no /metrics endpoint is mounted.
type RouterDeps struct {
	Config         *config.Config
	Logger         *slog.Logger
	Processing     *services.ProcessingService
	Health         *services.HealthService
	Brands         *brandstore.Store
	Hub            *progress.Hub
	MetricsHandler http.Handler
}

// NewRouter assembles the chi router with the full middleware chain and
// all API routes.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	errorHandler := apierrors.NewErrorHandler(logger, cfg.Logging.Development)

	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(logger))
	r.Use(custommw.Recoverer(logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))

	if cfg.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: cfg.Security.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}
	if cfg.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(cfg.Security.RateLimit.RPS, cfg.Security.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}
	r.Use(custommw.MaxBytes(cfg.Processing.MaxUploadBytes))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	healthHandler := NewHealthHandler(services.NewHealthService(Version, deps.Brands))
	if deps.Health != nil {
		healthHandler = NewHealthHandler(deps.Health)
	}
	processHandler := NewProcessHandler(deps.Processing, logger, errorHandler, cfg.Processing.MaxFiles)
	brandsHandler := NewBrandsHandler(deps.Brands, logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/health", healthHandler.Health)
		r.Post("/orders/process", processHandler.ProcessOrders)
		r.Post("/income/process", processHandler.ProcessIncome)
		r.Mount("/brands", brandsHandler.Routes())
	})

	r.Get("/healthz", healthHandler.Health)

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	if deps.Hub != nil {
		wsHandler := NewWSHandler(deps.Hub, logger)
		r.Get("/ws", wsHandler.Serve)
	}

	return r
}
