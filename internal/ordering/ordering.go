package ordering

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// ErrEmptyReorder is returned when a reorder request carries no entries.
var ErrEmptyReorder = errors.New("reorder list is empty")

// MaxOrderReader is the slice of the task store the manager depends on.
type MaxOrderReader interface {
	MaxOrder(ctx context.Context, userID string, category domain.Category) (int, bool, error)
}

// Entry is one unvalidated element of a bulk reorder request.
type Entry struct {
	ID       string `json:"_id"`
	Order    int    `json:"order"`
	Category string `json:"category"`
}

// Manager computes insertion orders and validates reorder requests.
type Manager struct {
	reader MaxOrderReader
}

// NewManager creates a Manager reading partition maxima from reader.
func NewManager(reader MaxOrderReader) *Manager {
	return &Manager{reader: reader}
}

// NextOrder returns the order a new task in the (userID, category) partition
// should receive: one past the current maximum, or 0 for an empty partition.
//
// The read and the subsequent insert are not atomic, so concurrent creators
// in the same partition can receive the same value.
func (m *Manager) NextOrder(ctx context.Context, userID string, category domain.Category) (int, error) {
	highest, found, err := m.reader.MaxOrder(ctx, userID, category)
	if err != nil {
		return 0, fmt.Errorf("failed to read partition maximum: %w", err)
	}
	if !found {
		return 0, nil
	}
	return highest + 1, nil
}

// ValidateReorder checks every entry and converts the list to domain items,
// preserving input order. It fails on the first malformed entry with a
// *domain.ValidationError whose field names the entry's index.
func ValidateReorder(entries []Entry) ([]domain.ReorderItem, error) {
	if len(entries) == 0 {
		return nil, domain.NewValidationError("tasks", "must contain at least one task", ErrEmptyReorder)
	}

	items := make([]domain.ReorderItem, 0, len(entries))
	for i, entry := range entries {
		field := "tasks[" + strconv.Itoa(i) + "]"

		id, err := uuid.Parse(entry.ID)
		if err != nil || id == uuid.Nil {
			return nil, domain.NewValidationError(field+"._id", "is not a valid task id", domain.ErrInvalidID)
		}

		category := domain.Category(entry.Category)
		if !category.IsValid() {
			return nil, domain.NewInvalidCategoryError(field + ".category")
		}

		if entry.Order < 0 {
			return nil, domain.NewValidationError(field+".order", "cannot be negative", domain.ErrInvalidOrder)
		}

		items = append(items, domain.ReorderItem{ID: id, Order: entry.Order, Category: category})
	}
	return items, nil
}
