package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// runMigrations executes one goose command: up, down or status.
func runMigrations(ctx context.Context, provider *goose.Provider, command string, logger *slog.Logger) error {
	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		for _, res := range results {
			logger.Info("migration applied",
				slog.Int64("version", res.Source.Version),
				slog.String("path", res.Source.Path),
				slog.Duration("duration", res.Duration))
		}
		if len(results) == 0 {
			logger.Debug("no pending migrations")
		}
		return nil

	case "down":
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		logger.Info("migration rolled back",
			slog.Int64("version", res.Source.Version),
			slog.String("path", res.Source.Path))
		return nil

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		for _, st := range statuses {
			attrs := []any{
				slog.Int64("version", st.Source.Version),
				slog.String("path", st.Source.Path),
				slog.String("state", string(st.State)),
			}
			if !st.AppliedAt.IsZero() {
				attrs = append(attrs, slog.Time("applied_at", st.AppliedAt))
			}
			logger.Info("migration status", attrs...)
		}
		return nil

	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
