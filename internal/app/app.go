package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"github.com/sofiaalage/product-sales-forecasting/internal/config"
	"github.com/sofiaalage/product-sales-forecasting/internal/exporter"
	"github.com/sofiaalage/product-sales-forecasting/internal/infrastructure"
	customMiddleware "github.com/sofiaalage/product-sales-forecasting/internal/middleware"
	"github.com/sofiaalage/product-sales-forecasting/internal/services"
	handlers "github.com/sofiaalage/product-sales-forecasting/internal/transport/http"
)

const (
	Version = "1.2.0"
	AppName = "Stock & Sales Forecasting"
)

// BuildTime is set at compile time via -ldflags.
var BuildTime = "unknown"

// Application is the dependency container for the web server.
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	Metrics         *infrastructure.Metrics
	AnalysisService *services.AnalysisService
	WebFS           fs.FS
}

// NewApplication wires configuration, logging, metrics, services and the
// router. webFS holds the embedded UI.
func NewApplication(webFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	metrics, err := infrastructure.NewMetrics(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		WebFS:   webFS,
	}

	app.AnalysisService = services.NewAnalysisService(logger, cfg.Analysis, metrics)

	app.setupRouter()
	app.createServer()

	return app, nil
}

// setupRouter configures the HTTP router. Middleware ordering:
// RequestID -> RealIP -> Logger -> Recoverer -> SecurityHeaders -> CORS ->
// RateLimiter, with /metrics mounted outside the group.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)

		r.Get("/", handlers.ServeIndex(a.WebFS, a.Logger))
	})

	// Prometheus endpoint stays outside the middleware group.
	r.Handle("/metrics", a.Metrics.Handler)

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(Version, BuildTime, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/version", healthHandler.Version)

		analysisHandler := handlers.NewAnalysisHandler(
			a.AnalysisService,
			exporter.NewExcelWriter(a.Logger),
			a.Logger,
			a.Metrics,
			a.Config.Server.MaxUploadBytes,
		)
		r.Mount("/analysis", analysisHandler.Routes())
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown completes. SIGINT and
// SIGTERM trigger a graceful shutdown bounded by the configured timeout.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := a.Metrics.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("metrics shutdown failed", slog.String("error", err.Error()))
		}
		infrastructure.CloseLogFile()
		return nil
	})

	err := g.Wait()
	a.Logger.Info("server stopped")
	return err
}
