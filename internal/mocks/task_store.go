package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TaskStore is a testify mock of store.TaskStore.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID
func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListByUser is a mock implementation of store.TaskStore.ListByUser
func (m *TaskStore) ListByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	args := m.Called(ctx, userID)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// MaxOrder is a mock implementation of store.TaskStore.MaxOrder
func (m *TaskStore) MaxOrder(ctx context.Context, userID string, category domain.Category) (int, bool, error) {
	args := m.Called(ctx, userID, category)
	return args.Int(0), args.Bool(1), args.Error(2)
}

// Update is a mock implementation of store.TaskStore.Update
func (m *TaskStore) Update(ctx context.Context, id uuid.UUID, patch domain.TaskPatch, updatedAt time.Time) error {
	args := m.Called(ctx, id, patch, updatedAt)
	return args.Error(0)
}

// Reorder is a mock implementation of store.TaskStore.Reorder
func (m *TaskStore) Reorder(ctx context.Context, items []domain.ReorderItem, updatedAt time.Time) (int64, error) {
	args := m.Called(ctx, items, updatedAt)
	return args.Get(0).(int64), args.Error(1)
}

// Delete is a mock implementation of store.TaskStore.Delete
func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
