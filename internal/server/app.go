// Package server initializes and runs the API server: configuration, logging,
// database, migrations, services, the HTTP endpoint, and graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vaultcore/api/internal/logging"
	"github.com/vaultcore/api/internal/server/config"
	vchttp "github.com/vaultcore/api/internal/server/http"
	"github.com/vaultcore/api/internal/server/repositories/repomanager"
	"github.com/vaultcore/api/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	authService    *services.AuthService
	catalogService *services.CatalogService
}

// NewApp wires the whole server together. It fails fast on an unusable
// configuration or an unreachable database.
func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewDefault()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{
		config:         cfg,
		logger:         logger,
		db:             db,
		repomanager:    rm,
		authService:    services.NewAuthService(db, rm, cfg),
		catalogService: services.NewCatalogService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema, starts the HTTP server, and blocks until the
// context is cancelled or a termination signal arrives. In-flight requests
// get a short drain window before the listener is torn down.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	router := vchttp.NewRouter(app.authService, app.catalogService, app.logger)
	srv := &http.Server{Addr: app.config.EndpointAddr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "db close error", "error", err)
	}

	return nil
}
