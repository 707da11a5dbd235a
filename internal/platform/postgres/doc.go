// Package postgres implements the task and user stores on PostgreSQL through
// the pgx database/sql driver, with goose migrations embedded in the binary.
package postgres
