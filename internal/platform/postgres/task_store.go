package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

const taskColumns = `id, user_id, title, description, category, sort_order, created_at, updated_at, task_timestamp`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db *sql.DB, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		string(task.Category),
		task.Order,
		task.CreatedAt,
		task.UpdatedAt,
		task.Timestamp,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID))
		return MapError(err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("category", string(task.Category)),
		slog.Int("order", task.Order))
	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}
	return task, nil
}

// ListByUser implements store.TaskStore.ListByUser
func (s *PostgresTaskStore) ListByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

// MaxOrder implements store.TaskStore.MaxOrder
func (s *PostgresTaskStore) MaxOrder(ctx context.Context, userID string, category domain.Category) (int, bool, error) {
	query := `
		SELECT sort_order
		FROM tasks
		WHERE user_id = $1 AND category = $2
		ORDER BY sort_order DESC
		LIMIT 1
	`

	var order int
	err := s.db.QueryRowContext(ctx, query, userID, string(category)).Scan(&order)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, MapError(err)
	}
	return order, true, nil
}

// Update implements store.TaskStore.Update
func (s *PostgresTaskStore) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, updatedAt time.Time) error {
	query, args := buildTaskUpdate(id, patch, updatedAt)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		logger.FromContextOrDefault(ctx, s.logger).Debug("update matched no task",
			slog.String("task_id", id.String()))
	}
	return nil
}

// buildTaskUpdate renders an UPDATE for the non-nil patch fields.
// updated_at is always the first assignment.
func buildTaskUpdate(id uuid.UUID, patch domain.TaskPatch, updatedAt time.Time) (string, []any) {
	sets := []string{"updated_at = $1"}
	args := []any{updatedAt}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Category != nil {
		add("category", string(*patch.Category))
	}
	if patch.Order != nil {
		add("sort_order", *patch.Order)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	return query, args
}

// Reorder implements store.TaskStore.Reorder
func (s *PostgresTaskStore) Reorder(ctx context.Context, items []domain.ReorderItem, updatedAt time.Time) (int64, error) {
	query := `
		UPDATE tasks
		SET sort_order = $1, category = $2, updated_at = $3
		WHERE id = $4 AND (sort_order <> $1 OR category <> $2)
	`

	var modified int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, item := range items {
			result, err := tx.ExecContext(ctx, query, item.Order, string(item.Category), updatedAt, item.ID)
			if err != nil {
				return store.NewStoreError("task", "reorder",
					fmt.Sprintf("failed to move task %s", item.ID), MapError(err))
			}
			n, err := result.RowsAffected()
			if err != nil {
				return store.NewStoreError("task", "reorder", "failed to read rows affected", err)
			}
			modified += n
		}
		return nil
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("reorder batch failed",
			slog.String("error", err.Error()),
			slog.Int("item_count", len(items)))
		return 0, err
	}
	return modified, nil
}

// Delete implements store.TaskStore.Delete
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var category string
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&category,
		&task.Order,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	task.Category = domain.Category(category)
	return &task, nil
}
