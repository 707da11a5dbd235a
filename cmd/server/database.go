package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"
)

// setupAppDatabase opens and pings the configured database.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, cfg.URL, cfg.MaxOpenConns)
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	logger.Info("database connection established", slog.String("driver", cfg.Driver))
	return db, nil
}

// newMigrationProvider returns the goose provider matching driver.
func newMigrationProvider(driver string, db *sql.DB) (*goose.Provider, error) {
	var (
		provider *goose.Provider
		err      error
	)
	switch driver {
	case config.DriverPostgres:
		provider, err = postgres.NewMigrationProvider(db)
	case config.DriverSQLite:
		provider, err = sqlite.NewMigrationProvider(db)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// newStores builds the task and user stores for driver.
func newStores(driver string, db *sql.DB, logger *slog.Logger) (store.TaskStore, store.UserStore, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.NewPostgresTaskStore(db, logger),
			postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger),
			nil
	case config.DriverSQLite:
		return sqlite.NewTaskStore(db, logger),
			sqlite.NewUserStore(db, bcrypt.DefaultCost, logger),
			nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
