package sqlite

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

// TaskStore implements store.TaskStore on SQLite.
type TaskStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskStore creates a SQLite-backed TaskStore. A nil logger falls back to slog.Default().
func NewTaskStore(db *sql.DB, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*TaskStore)(nil)

func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID.String(),
		task.UserID,
		task.Title,
		task.Description,
		string(task.Category),
		task.Order,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
		formatTime(task.Timestamp),
	)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("insert task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}
	return nil
}

func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}
	return task, nil
}

func (s *TaskStore) ListByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = ?
		 ORDER BY sort_order ASC, created_at ASC`, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return tasks, nil
}

func (s *TaskStore) MaxOrder(ctx context.Context, userID string, category domain.Category) (int, bool, error) {
	var order int
	err := s.db.QueryRowContext(ctx,
		`SELECT sort_order FROM tasks
		 WHERE user_id = ? AND category = ?
		 ORDER BY sort_order DESC
		 LIMIT 1`, userID, string(category)).Scan(&order)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, MapError(err)
	}
	return order, true, nil
}

func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, updatedAt time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(updatedAt)}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, string(*patch.Category))
	}
	if patch.Order != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *patch.Order)
	}
	args = append(args, id.String())

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}
	return nil
}

func (s *TaskStore) Reorder(ctx context.Context, items []domain.ReorderItem, updatedAt time.Time) (int64, error) {
	const query = `UPDATE tasks
		SET sort_order = ?, category = ?, updated_at = ?
		WHERE id = ? AND (sort_order <> ? OR category <> ?)`

	ts := formatTime(updatedAt)
	var modified int64
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, item := range items {
			category := string(item.Category)
			result, err := tx.ExecContext(ctx, query,
				item.Order, category, ts, item.ID.String(), item.Order, category)
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
		return 0, err
	}
	return modified, nil
}

func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id.String()); err != nil {
		return MapError(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task                          domain.Task
		category                      string
		createdAt, updatedAt, stamped string
	)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&category,
		&task.Order,
		&createdAt,
		&updatedAt,
		&stamped,
	)
	if err != nil {
		return nil, err
	}
	task.Category = domain.Category(category)

	if task.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if task.Timestamp, err = parseTime(stamped); err != nil {
		return nil, err
	}
	return &task, nil
}
