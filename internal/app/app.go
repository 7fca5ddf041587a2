package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"ecomcli/internal/config"
	"ecomcli/internal/dataset"
	"ecomcli/internal/infrastructure"
	"ecomcli/internal/metrics"
	transport "ecomcli/internal/transport/http"
	"ecomcli/pkg/contracts"
	"ecomcli/pkg/contracts/domain"
)

// Application holds the wired components of the web binary.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Server    *http.Server
	logCloser io.Closer

	loader  *dataset.Loader
	records []domain.SalesRecord
	window  domain.DateWindow
}

// Records implements transport.DataService
func (a *Application) Records() []domain.SalesRecord {
	return a.records
}

// Quality implements transport.DataService
func (a *Application) Quality() []dataset.QualityEvent {
	return a.loader.Report()
}

// DefaultWindow implements transport.DataService
func (a *Application) DefaultWindow() domain.DateWindow {
	return a.window
}

// NewApplication loads configuration, prepares the dataset and builds the
// HTTP server. The dataset is loaded exactly once; metric requests reuse
// the cached record set.
func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := infrastructure.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	slog.SetDefault(logger)

	window, err := cfg.Analysis.Window()
	if err != nil {
		return nil, fmt.Errorf("analysis window: %w", err)
	}

	promSink, err := dataset.NewPrometheusSink(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("register quality metrics: %w", err)
	}
	sink := dataset.MultiSink{dataset.SlogSink{Logger: logger}, promSink}

	loader := dataset.NewLoader(cfg.Paths.DataDir, logger, sink)
	raw, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	records := loader.Merge(loader.Clean(raw))

	app := &Application{
		Config:    cfg,
		Logger:    logger,
		logCloser: closer,
		loader:    loader,
		records:   records,
		window:    window,
	}

	router := transport.NewRouter(app, metrics.NewEngine(logger), logger)
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
func (a *Application) Run() error {
	defer func() {
		if a.logCloser != nil {
			a.logCloser.Close()
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting",
			slog.String("version", contracts.GetFullVersionString()),
			slog.String("addr", a.Server.Addr),
			slog.Int("records", len(a.records)))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	a.Logger.Info("server stopped")
	return nil
}
