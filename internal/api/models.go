package api

import (
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/ordering"
)

// RegisterUserRequest defines the payload for POST /users.
type RegisterUserRequest struct {
	UID      string `json:"uid"`
	Email    string `json:"email"    validate:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UserPayload is the public subset of a user echoed after registration.
type UserPayload struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// RegisterUserResponse is returned by POST /users on success.
type RegisterUserResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    UserPayload `json:"user"`
}

// LookupUserResponse is returned by GET /users/{email} on success.
// The user's internal id and password never serialize.
type LookupUserResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// CreateTaskRequest defines the payload for POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	UserID      string `json:"userId"`
}

// UpdateTaskRequest defines the payload for PUT /tasks/{id}.
// Absent fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Order       *int    `json:"order"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTaskRequest) ToPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Order:       r.Order,
	}
	if r.Category != nil {
		category := domain.Category(*r.Category)
		patch.Category = &category
	}
	return patch
}

// ReorderTasksRequest defines the payload for PUT /tasks/reorder/{userId}.
type ReorderTasksRequest struct {
	Tasks []ordering.Entry `json:"tasks"`
}

// RealtimeFrame is one websocket message pushed to clients.
type RealtimeFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}
