package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"SummaryHub/internal/config"
	"SummaryHub/internal/infrastructure/fetcher"
	"SummaryHub/internal/infrastructure/llm"
	"SummaryHub/internal/infrastructure/storage"
	"SummaryHub/internal/provider"
	"SummaryHub/internal/server"
	"SummaryHub/internal/usecase"
)

// Application owns the wiring between configuration, storage, providers,
// and the HTTP surface.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *sql.DB
	monitor *usecase.HealthMonitor
	handler http.Handler
}

// New builds the full application graph from configuration. The database
// connection is optional: without a DSN the service starts but item
// lookups fail as upstream errors.
func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	app := &Application{cfg: cfg, logger: logger}

	var repository *storage.PostgresRepository
	if cfg.Database.DSN != "" {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		app.db = db
		repository = storage.NewPostgresRepository(db)
	} else {
		logger.Warn("no database DSN configured, item lookups will fail")
	}

	registry := buildRegistry(cfg, logger)

	deps := usecase.ServiceDeps{
		Registry: registry,
		Logger:   logger.With("component", "summarize"),
	}
	if repository != nil {
		deps.Repository = repository
	}
	svc := usecase.NewService(deps)

	app.monitor = usecase.NewHealthMonitor(registry, cfg.Health.Schedule, logger.With("component", "health"))
	app.handler = server.SetupMux(svc, registry, logger.With("component", "http"), cfg.Server.AuthToken)
	return app, nil
}

// Handler returns the root HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// StartBackground launches the provider health probe.
func (a *Application) StartBackground() error {
	return a.monitor.Start()
}

// Run serves HTTP until ctx is done or a termination signal arrives,
// then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if err := a.StartBackground(); err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      a.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "port", a.cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		a.logger.Info("shutdown signal received")
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close stops background work and releases the database connection.
func (a *Application) Close() error {
	a.monitor.Stop()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func buildRegistry(cfg config.Config, logger *slog.Logger) *provider.Registry {
	if cfg.Providers.Mock {
		registry := provider.NewRegistry("mock")
		registry.Register(&llm.MockAdapter{})
		logger.Info("registered provider", "name", "mock")
		return registry
	}

	pages := fetcher.NewPageFetcher(nil)
	registry := provider.NewRegistry(cfg.Providers.Default)

	if cfg.Providers.Gemini.APIKey != "" {
		registry.Register(llm.NewGeminiAdapter(cfg.Providers.Gemini))
		logger.Info("registered provider", "name", "gemini", "model", cfg.Providers.Gemini.Model)
	}
	if cfg.Providers.Grok.APIKey != "" {
		registry.Register(llm.NewGrokAdapter(cfg.Providers.Grok))
		logger.Info("registered provider", "name", "grok", "model", cfg.Providers.Grok.Model)
	}
	if cfg.Providers.Perplexity.APIKey != "" {
		registry.Register(llm.NewPerplexityAdapter(cfg.Providers.Perplexity, pages))
		logger.Info("registered provider", "name", "perplexity", "model", cfg.Providers.Perplexity.Model)
	}

	if len(registry.List()) == 0 {
		logger.Warn("no provider API keys configured, falling back to mock")
		registry = provider.NewRegistry("mock")
		registry.Register(&llm.MockAdapter{})
	}
	return registry
}
