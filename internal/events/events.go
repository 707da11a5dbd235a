package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// EventName is the name under which change events are delivered to clients.
const EventName = "taskChange"

// Type identifies the mutation that produced a ChangeEvent.
type Type string

// Event types, one per mutating task operation.
const (
	TypeCreate  Type = "create"
	TypeUpdate  Type = "update"
	TypeReorder Type = "reorder"
	TypeDelete  Type = "delete"
)

// ChangeEvent describes a single task mutation. Exactly one of Task, Tasks or
// TaskID is set, depending on Type.
type ChangeEvent struct {
	Type   Type                 `json:"type"`
	Task   *domain.Task         `json:"task,omitempty"`
	Tasks  []domain.ReorderItem `json:"tasks,omitempty"`
	TaskID *uuid.UUID           `json:"taskId,omitempty"`
}

// NewCreateEvent returns the event emitted after task was created.
func NewCreateEvent(task *domain.Task) ChangeEvent {
	return ChangeEvent{Type: TypeCreate, Task: task}
}

// NewUpdateEvent returns the event emitted after task was updated.
func NewUpdateEvent(task *domain.Task) ChangeEvent {
	return ChangeEvent{Type: TypeUpdate, Task: task}
}

// NewReorderEvent returns the event emitted after a bulk reorder.
// It echoes the submitted items, not the stored state.
func NewReorderEvent(items []domain.ReorderItem) ChangeEvent {
	return ChangeEvent{Type: TypeReorder, Tasks: items}
}

// NewDeleteEvent returns the event emitted after a delete.
func NewDeleteEvent(id uuid.UUID) ChangeEvent {
	return ChangeEvent{Type: TypeDelete, TaskID: &id}
}

// Notifier publishes change events to interested subscribers.
type Notifier interface {
	// Publish delivers event to subscribers. An error means the event was not
	// handed off; it says nothing about delivery to individual subscribers.
	Publish(ctx context.Context, event ChangeEvent) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, event ChangeEvent) error

// Publish calls f(ctx, event).
func (f NotifierFunc) Publish(ctx context.Context, event ChangeEvent) error {
	return f(ctx, event)
}
