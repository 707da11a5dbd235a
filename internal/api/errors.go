package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Messages returned to clients for well-known conditions.
const (
	MsgUserExists         = "User already exists"
	MsgUserNotFound       = "User not found"
	MsgUserCreated        = "User created successfully"
	MsgNoTasksModified    = "No tasks were modified"
	MsgInvalidRequest     = "Invalid request format"
	MsgInvalidTaskID      = "Invalid task id"
	MsgUnexpectedError    = "An unexpected error occurred"
	MsgInvalidEntity      = "Invalid entity data"
	MsgTaskNotFound       = "Task not found"
	MsgValidationFallback = "Validation error"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Client errors: validation, duplicates and the no-op reorder
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrNoTasksModified),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, store.ErrEmailExists):
		return MsgUserExists

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return MsgUserNotFound

	case errors.Is(err, store.ErrTaskNotFound):
		return MsgTaskNotFound

	case errors.Is(err, service.ErrNoTasksModified):
		return MsgNoTasksModified

	// Field names and messages of domain validation errors are fixed strings.
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)

	case errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidEntity

	default:
		return MsgUnexpectedError
	}
}

// SanitizeValidationError turns validator/v10 errors into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return MsgValidationFallback
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
