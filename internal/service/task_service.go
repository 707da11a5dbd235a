package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/events"
	"github.com/phrazzld/taskboard-api/internal/ordering"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// CreateTaskInput carries the client-supplied fields of a new task.
// An empty Category resolves to domain.DefaultCategory.
type CreateTaskInput struct {
	Title       string
	Description string
	Category    domain.Category
	UserID      string
}

// TaskService defines the task board operations.
type TaskService interface {
	// Create validates input, appends the task to the end of its partition
	// and returns the stored task.
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// List returns all tasks of userID ascending by order.
	List(ctx context.Context, userID string) ([]*domain.Task, error)

	// Update applies patch and returns the updated task.
	// A task that does not exist yields (nil, nil).
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error)

	// Reorder writes a batch of order/category assignments atomically.
	// Returns ErrNoTasksModified when nothing changed.
	Reorder(ctx context.Context, userID string, entries []ordering.Entry) error

	// Delete removes a task; deleting an unknown id succeeds.
	Delete(ctx context.Context, id uuid.UUID) error
}

type taskServiceImpl struct {
	tasks    store.TaskStore
	orders   *ordering.Manager
	notifier events.Notifier
	now      func() time.Time
	logger   *slog.Logger
}

// NewTaskService creates a TaskService. A nil notifier disables change events.
func NewTaskService(tasks store.TaskStore, notifier events.Notifier, logger *slog.Logger) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = events.NotifierFunc(func(context.Context, events.ChangeEvent) error { return nil })
	}
	return &taskServiceImpl{
		tasks:    tasks,
		orders:   ordering.NewManager(tasks),
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.With(slog.String("component", "task_service")),
	}
}

func (s *taskServiceImpl) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewValidationError("title", "is required", domain.ErrMissingField)
	}
	if input.UserID == "" {
		return nil, domain.NewValidationError("userId", "is required", domain.ErrMissingField)
	}
	category := input.Category
	if category == "" {
		category = domain.DefaultCategory
	}
	if !category.IsValid() {
		return nil, domain.NewInvalidCategoryError("category")
	}

	order, err := s.orders.NextOrder(ctx, input.UserID, category)
	if err != nil {
		log.Error("failed to compute next order",
			slog.String("error", err.Error()),
			slog.String("user_id", input.UserID))
		return nil, NewTaskServiceError("create", "failed to compute order", err)
	}

	task, err := domain.NewTask(input.Title, input.Description, category, input.UserID, order, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to insert task",
			slog.String("error", err.Error()),
			slog.String("user_id", input.UserID))
		return nil, NewTaskServiceError("create", "failed to save task", err)
	}

	stored, err := s.tasks.GetByID(ctx, task.ID)
	if err != nil {
		log.Error("inserted task could not be read back",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, NewTaskServiceError("create", "failed to read back task", err)
	}

	log.Info("task created",
		slog.String("task_id", stored.ID.String()),
		slog.String("user_id", stored.UserID),
		slog.String("category", string(stored.Category)),
		slog.Int("order", stored.Order))

	s.publish(ctx, events.NewCreateEvent(stored))
	return stored, nil
}

func (s *taskServiceImpl) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Update(ctx, id, patch, s.now()); err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update", "failed to update task", err)
	}

	task, err := s.tasks.GetByID(ctx, id)
	if errors.Is(err, store.ErrTaskNotFound) {
		log.Debug("update target does not exist", slog.String("task_id", id.String()))
		return nil, nil
	}
	if err != nil {
		log.Error("failed to read updated task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, NewTaskServiceError("update", "failed to read updated task", err)
	}

	s.publish(ctx, events.NewUpdateEvent(task))
	return task, nil
}

func (s *taskServiceImpl) Reorder(ctx context.Context, userID string, entries []ordering.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	items, err := ordering.ValidateReorder(entries)
	if err != nil {
		log.Debug("rejected reorder request",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return err
	}

	modified, err := s.tasks.Reorder(ctx, items, s.now())
	if err != nil {
		log.Error("failed to reorder tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.Int("item_count", len(items)))
		return NewTaskServiceError("reorder", "failed to apply reorder", err)
	}
	if modified == 0 {
		log.Debug("reorder modified no tasks",
			slog.String("user_id", userID),
			slog.Int("item_count", len(items)))
		return ErrNoTasksModified
	}

	log.Info("tasks reordered",
		slog.String("user_id", userID),
		slog.Int64("modified", modified))

	s.publish(ctx, events.NewReorderEvent(items))
	return nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return NewTaskServiceError("delete", "failed to delete task", err)
	}

	s.publish(ctx, events.NewDeleteEvent(id))
	return nil
}

// publish hands event to the notifier. Failures are logged only.
func (s *taskServiceImpl) publish(ctx context.Context, event events.ChangeEvent) {
	if err := s.notifier.Publish(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to publish change event",
			slog.String("error", err.Error()),
			slog.String("event_type", string(event.Type)))
	}
}
