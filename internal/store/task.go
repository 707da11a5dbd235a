package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser returns every task owned by userID, ascending by order.
	// Ties are broken by creation time.
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)

	// MaxOrder returns the highest order within the (userID, category) partition.
	// found is false when the partition is empty.
	MaxOrder(ctx context.Context, userID string, category domain.Category) (order int, found bool, err error)

	// Update applies the non-nil fields of patch and sets updated_at.
	// Updating a task that does not exist is a no-op and returns nil.
	Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, updatedAt time.Time) error

	// Reorder writes the order and category of every item in a single transaction
	// and returns how many tasks actually changed. Items whose stored values
	// already match, or whose ID does not exist, are not counted.
	Reorder(ctx context.Context, items []domain.ReorderItem, updatedAt time.Time) (int64, error)

	// Delete removes a task. Deleting a task that does not exist returns nil.
	Delete(ctx context.Context, id uuid.UUID) error
}
