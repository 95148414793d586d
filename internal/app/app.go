// Package app wires configuration, logging, storage, the session store and
// the bridge server into one runnable process.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dashlens/dashlens/internal/bridge"
	"github.com/dashlens/dashlens/internal/config"
	"github.com/dashlens/dashlens/internal/credential"
	"github.com/dashlens/dashlens/internal/logging"
	"github.com/dashlens/dashlens/internal/session"
	"github.com/dashlens/dashlens/internal/storage"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions *session.Store
	server   *bridge.Server
}

// NewApp opens the database (applying migrations) and builds the bridge
// server. Logs go to w.
func NewApp(ctx context.Context, cfg *config.Config, w io.Writer) (*App, error) {
	logger, err := logging.New(w, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if v, err := storage.SchemaVersion(ctx, db); err == nil {
		logger.Info(ctx, "Database ready", "path", cfg.DatabasePath, "schema_version", v)
	}

	sessions := session.NewStore()
	svc := bridge.NewService(credential.NewHasher(credential.DefaultParams), sessions, db, logger)
	srv := bridge.NewServer(cfg.ListenAddr, logger, svc, cfg.ShutdownTimeout)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
		server:   srv,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case s := <-sigs:
			app.logger.Info(context.Background(), "Received signal", "signal", s.String())
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run serves the bridge until ctx is cancelled or a termination signal
// arrives, then closes the database. The session store dies with the
// process.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	stopSignals := app.initSignalHandler(cancelFunc)
	defer stopSignals()

	var (
		wg        sync.WaitGroup
		serverErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, "bridge server failed", "error", err)
			serverErr = err
			cancelFunc()
		}
	}()

	wg.Wait()

	closeErr := app.db.Close()
	if closeErr != nil {
		app.logger.Error(context.Background(), "close database", "error", closeErr)
	}

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(serverErr, closeErr)
}
