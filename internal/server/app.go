// Package server initializes and runs the bookshelf API server.
// It selects the storage backend, applies migrations, wires services into
// the HTTP layer and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/config"
	"github.com/dmitrijs2005/bookshelf/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookshelf/internal/server/rest"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
)

const dbPingTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	bookService *services.BookService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	var (
		db *sql.DB
		rm repomanager.RepositoryManager
	)

	switch c.Storage {
	case config.StorageMemory:
		logger.Warn(ctx, "using in-memory storage, data is lost on exit")
		rm = repomanager.NewMemoryRepositoryManager()
	default:
		var err error
		db, err = openDB(c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("db ping error: %w", err)
		}

		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
	}

	var conn dbx.DBTX
	if db != nil {
		conn = db
	}

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		authService: services.NewAuthService(conn, rm, c),
		bookService: services.NewBookService(conn, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newRESTServer() (*rest.Server, error) {
	opts := rest.Options{
		Address:       app.config.EndpointAddr,
		AuthRateLimit: app.config.AuthRateLimit,
	}
	if app.db != nil {
		opts.Pinger = app.db
	}
	return rest.NewServer(opts, app.logger, app.authService, app.bookService)
}

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s, err := app.newRESTServer()
	if err != nil {
		cancelFunc()
		return err
	}

	if err := s.Run(ctx); err != nil {
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
