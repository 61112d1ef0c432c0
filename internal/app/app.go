package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pasarcli/internal/brandstore"
	"pasarcli/internal/config"
	"pasarcli/internal/infrastructure"
	"pasarcli/internal/observability"
	"pasarcli/internal/progress"
	"pasarcli/internal/services"
	transporthttp "pasarcli/internal/transport/http"
)

// Application holds the assembled service and its long-lived components.
type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	Brands     *brandstore.Store
	Hub        *progress.Hub
	Providers  *observability.Providers
	Processing *services.ProcessingService
	Server     *http.Server
}

// New builds the application from configuration. Metrics initialization
// failures are logged and tolerated so the service still starts without
// an exporter.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	a := &Application{
		Config: cfg,
		Logger: logger,
	}

	providers, err := observability.Initialize(logger)
	if err != nil {
		logger.Warn("metrics disabled", slog.String("error", err.Error()))
	} else {
		a.Providers = providers
	}

	a.Brands = brandstore.New(logger, cfg.Paths.BrandsFile)
	if err := a.Brands.Load(context.Background()); err != nil {
		logger.Warn("failed to load brand snapshot",
			slog.String("path", cfg.Paths.BrandsFile),
			slog.String("error", err.Error()))
	}

	a.Hub = progress.NewHub(logger)

	var metrics *observability.Metrics
	if a.Providers != nil {
		metrics = a.Providers.Metrics
	}
	a.Processing = services.NewProcessingService(logger, a.Brands, a.Hub, metrics)

	var metricsHandler http.Handler
	if a.Providers != nil {
		metricsHandler = a.Providers.PrometheusHTTP
	}
	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Config:         cfg,
		Logger:         logger,
		Processing:     a.Processing,
		Health:         services.NewHealthService(transporthttp.Version, a.Brands),
		Brands:         a.Brands,
		Hub:            a.Hub,
		MetricsHandler: metricsHandler,
	})

	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return a, nil
}

// Start launches the progress hub and the HTTP listener.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "starting application",
		slog.String("version", transporthttp.Version),
		slog.Int("port", a.Config.Server.Port),
		slog.String("level", a.Config.Logging.Level),
		slog.Int("brand_mappings", a.Brands.Count()))

	a.Hub.Start()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop shuts the server and background components down gracefully.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.Hub.Stop()

	if a.Providers != nil {
		if err := a.Providers.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "error shutting down metrics", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}

	a.Logger.InfoContext(ctx, "application shutdown complete")
	return nil
}

// Run starts the application and blocks until an interrupt arrives or
// the server fails.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case sig := <-sigChan:
		a.Logger.Info("received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*a.Config.Server.ShutdownTimeout)
	defer stopCancel()
	return a.Stop(stopCtx)
}
