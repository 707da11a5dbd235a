package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is one of the fixed columns a task can live in.
type Category string

// The task categories. Their string values are part of the wire format.
const (
	CategoryToDo       Category = "To-Do"
	CategoryInProgress Category = "In Progress"
	CategoryDone       Category = "Done"
)

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = CategoryToDo

// Categories returns every valid category in board order.
func Categories() []Category {
	return []Category{CategoryToDo, CategoryInProgress, CategoryDone}
}

// NewInvalidCategoryError reports that field holds a category outside Categories().
func NewInvalidCategoryError(field string) *ValidationError {
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return NewValidationError(field, "must be one of "+strings.Join(names, ", "), ErrInvalidCategory)
}

// IsValid reports whether c is one of the fixed categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryToDo, CategoryInProgress, CategoryDone:
		return true
	default:
		return false
	}
}

// Task is a single card on a user's board.
type Task struct {
	ID          uuid.UUID `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	UserID      string    `json:"userId"`
	// Order positions the task within its (UserID, Category) partition.
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTask creates a Task with a fresh ID and all timestamps set to now.
// An empty category resolves to DefaultCategory.
// Returns a *ValidationError if any field is invalid.
func NewTask(title, description string, category Category, userID string, order int, now time.Time) (*Task, error) {
	if category == "" {
		category = DefaultCategory
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Category:    category,
		UserID:      userID,
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
		Timestamp:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the invariants a stored task must satisfy.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("_id", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrMissingField)
	}
	if t.UserID == "" {
		return NewValidationError("userId", "is required", ErrMissingField)
	}
	if !t.Category.IsValid() {
		return NewInvalidCategoryError("category")
	}
	if t.Order < 0 {
		return NewValidationError("order", "cannot be negative", ErrInvalidOrder)
	}
	return nil
}

// TaskPatch holds the fields of a partial task update. Nil fields are left untouched.
// Category is applied as given; it is deliberately not checked against the fixed set.
type TaskPatch struct {
	Title       *string
	Description *string
	Category    *Category
	Order       *int
}

// ReorderItem is one entry of a bulk reorder request.
type ReorderItem struct {
	ID       uuid.UUID `json:"_id"`
	Order    int       `json:"order"`
	Category Category  `json:"category"`
}
