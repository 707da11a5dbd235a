// Package service contains the task board use cases. It orchestrates the
// store interfaces (internal/store), the order index manager
// (internal/ordering) and the change notifier (internal/events).
//
// Key components:
//
// 1. TaskService: create/list/update/reorder/delete. Every successful
// mutation publishes exactly one change event; publish failures are logged
// and never fail the mutation.
//
// 2. UserService: registration and lookup by email.
//
// 3. Error Handling:
//   - Expected conditions are sentinel errors (ErrNoTasksModified, ErrUserExists, ErrUserNotFound)
//   - Validation failures are *domain.ValidationError
//   - Unexpected store failures are wrapped in TaskServiceError / UserServiceError
//
// The service layer depends on store interfaces, never on a specific backend.
package service
