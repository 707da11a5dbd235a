package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	taskStore store.TaskStore
	userStore store.UserStore

	// Services
	taskService service.TaskService
	userService service.UserService

	// Change events. notifier is the hub itself unless Redis is configured,
	// in which case events round-trip through Redis and the relay feeds the hub.
	hub      *events.Hub
	notifier events.Notifier
	redis    *redis.Client
	relay    *events.Relay

	stopRelay context.CancelFunc
	relayWG   sync.WaitGroup
}

// newApplication wires stores, services and the change notifier around an
// already migrated database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.taskStore, app.userStore, err = newStores(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	app.hub = events.NewHub(cfg.Realtime.BufferSize, logger)
	app.notifier = app.hub

	if cfg.Redis.Enabled() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			app.hub.Close()
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		app.redis = redis.NewClient(opts)
		app.notifier = events.NewRedisNotifier(app.redis, cfg.Redis.Channel)
		app.relay = events.NewRelay(app.redis, cfg.Redis.Channel, app.hub, logger)
		logger.Info("change events routed through redis", slog.String("channel", cfg.Redis.Channel))
	}

	app.taskService = service.NewTaskService(app.taskStore, app.notifier, logger)
	app.userService = service.NewUserService(app.userStore, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the relay (when configured) and serves HTTP until ctx is done.
func (app *application) Run(ctx context.Context) error {
	app.startRelay(ctx)

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// startRelay forwards Redis events into the local hub until cleanup.
func (app *application) startRelay(ctx context.Context) {
	if app.relay == nil {
		return
	}
	relayCtx, cancel := context.WithCancel(ctx)
	app.stopRelay = cancel

	app.relayWG.Add(1)
	go func() {
		defer app.relayWG.Done()
		app.relay.Run(relayCtx)
	}()
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.stopRelay != nil {
		app.stopRelay()
		app.relayWG.Wait()
	}

	// Closing the hub ends every websocket stream with a close frame.
	app.hub.Close()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
