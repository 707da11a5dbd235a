// Package domain holds the task board entities (tasks, users, categories)
// and their validation rules. It has no storage or transport dependencies.
package domain
