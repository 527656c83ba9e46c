package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"pricecli/internal/config"
	"pricecli/internal/dataprocessing"
	apierrors "pricecli/internal/errors"
	"pricecli/internal/files"
	"pricecli/internal/infrastructure"
	customMiddleware "pricecli/internal/middleware"
	"pricecli/internal/prompt"
	"pricecli/internal/services"
	handlers "pricecli/internal/transport/http"
)

// Options adjust how an Application is assembled. The zero value loads the
// configuration from the default locations.
type Options struct {
	// ConfigFile is a YAML file to load. Empty searches the default locations.
	ConfigFile string
	// DatasetsDir overrides the configured dataset base directory.
	DatasetsDir string
	// Port overrides the configured HTTP port when non-zero.
	Port int
	// Console receives console logs and stdout traces. Defaults to os.Stdout.
	Console io.Writer
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.DatasetMetrics

	Locator   *files.Locator
	Discovery *files.Discovery
	Loader    *dataprocessing.Loader
	Services  *ServiceContainer

	Router *chi.Mux
	Server *http.Server
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Datasets *services.DatasetService
	Health   *services.HealthService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(opts Options) (*Application, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	paths, err := config.GetPaths(cfg.Dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	return newApplication(cfg, paths, opts)
}

// NewApplicationWithConfig assembles an application from an explicit
// configuration, resolving relative directories against rootDir.
func NewApplicationWithConfig(cfg *config.Config, rootDir string, opts Options) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return newApplication(cfg, config.NewPaths(rootDir, cfg.Dataset), opts)
}

func newApplication(cfg *config.Config, paths *config.Paths, opts Options) (*Application, error) {
	if opts.DatasetsDir != "" {
		paths = paths.WithDatasetsDir(opts.DatasetsDir)
	}
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	if err := paths.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger, err := infrastructure.NewLogger(paths.ResolveLogFile(cfg.Logging), console)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	logger.Debug("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))
	paths.LogPathResolution(logger)

	otelCfg := infrastructure.NewOTelConfig(cfg.Telemetry)
	otelCfg.TraceWriter = console
	otelProviders, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateDatasetMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

func loadConfig(opts Options) (*config.Config, error) {
	if opts.ConfigFile != "" {
		return config.LoadFile(opts.ConfigFile)
	}
	return config.Load()
}

// initializeServices wires the dataset pipeline and the services on top of it
func (a *Application) initializeServices() {
	// Validate guarantees a single-rune delimiter.
	delimiter, _ := utf8.DecodeRuneInString(a.Config.Dataset.Delimiter)

	a.Locator = files.NewLocator(a.Paths.DatasetsDir).WithLogger(a.Logger)
	a.Discovery = files.NewDiscovery(a.Paths.DatasetsDir)
	a.Loader = dataprocessing.NewLoader(a.Locator,
		dataprocessing.WithDelimiter(delimiter),
		dataprocessing.WithLogger(a.Logger),
		dataprocessing.WithTracer(a.OTelProviders.Tracer),
	)

	a.Services = &ServiceContainer{
		Datasets: services.NewDatasetService(a.Discovery, a.Loader, files.NewManager(a.Paths.ExportsDir).WithLogger(a.Logger), a.Metrics, a.Logger),
		Health:   services.NewHealthService(config.AppVersion, a.Paths.DatasetsDir, a.Logger),
	}
}

// NewSelector builds the interactive dataset prompt over in and out.
func (a *Application) NewSelector(in io.Reader, out io.Writer) *prompt.Selector {
	return prompt.NewSelector(in, out, a.Locator, a.Discovery, a.Config.Dataset.MaxAttempts, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	// RequestID → OTel → Logger → Recoverer → RateLimiter
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(errorHandler))
	r.Use(customMiddleware.SecurityHeaders)
	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
			errorHandler,
		).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
	datasetHandler := handlers.NewDatasetHandler(a.Services.Datasets, a.Logger, errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.With(render.SetContentType(render.ContentTypeJSON)).Get("/health", healthHandler.HealthCheck)
		r.Mount("/datasets", datasetHandler.Routes())
	})

	r.Get("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, errorHandler).GetMetrics)

	a.Router = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// gracefully within the configured shutdown timeout.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "HTTP server listening",
			slog.String("address", ln.Addr().String()),
			slog.String("datasets_dir", a.Paths.DatasetsDir))
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.InfoContext(ctx, "Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close flushes telemetry and releases the log file.
func (a *Application) Close(ctx context.Context) error {
	var errs []error

	if a.OTelProviders != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
	}
	return errors.Join(errs...)
}
