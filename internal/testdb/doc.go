// Package testdb provides database fixtures for tests.
//
// SQLite databases are hermetic: each call to OpenSQLite creates a migrated
// database file under t.TempDir(). PostgreSQL tests are opt-in; OpenPostgres
// skips the calling test unless TASKBOARD_TEST_DATABASE_URL is set.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.OpenSQLite(t)
//	    tasks := sqlite.NewTaskStore(db, nil)
//	    ...
//	}
//
// Use WithTx to run a test body inside a transaction that is always rolled
// back, which keeps Postgres integration tests isolated from each other.
package testdb
