// Package sqlite implements the store interfaces on an embedded SQLite
// database (modernc.org/sqlite, no cgo). It is the default backend for local
// development and the hermetic backend for tests.
//
// Timestamps are stored as fixed-width UTC text so that lexical and
// chronological order agree; ids are stored as canonical UUID strings.
package sqlite
