package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 10 * time.Second

// DatabaseURLEnv names the variable holding the Postgres URL for integration tests.
const DatabaseURLEnv = "TASKBOARD_TEST_DATABASE_URL"

// DatabaseURL returns the Postgres URL for integration tests, or "" when unset.
func DatabaseURL() string {
	return os.Getenv(DatabaseURLEnv)
}

// IsIntegrationTestEnvironment reports whether Postgres integration tests can run.
func IsIntegrationTestEnvironment() bool {
	return DatabaseURL() != ""
}

// OpenSQLite returns a migrated SQLite database in a temporary directory.
// The database is closed when the test completes.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "taskboard.db"))
	require.NoError(t, err, "failed to open sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.Migrate(ctx, db), "failed to migrate sqlite database")
	return db
}

// OpenPostgres returns a migrated connection to the integration database,
// skipping the test when TASKBOARD_TEST_DATABASE_URL is not set.
// All rows are removed when the test completes.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skip(DatabaseURLEnv + " not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, url, 5)
	require.NoError(t, err, "failed to connect to postgres")
	require.NoError(t, postgres.Migrate(ctx, db), "failed to migrate postgres")

	t.Cleanup(func() {
		if _, err := db.Exec("TRUNCATE tasks, users"); err != nil {
			t.Logf("Warning: failed to truncate tables: %v", err)
		}
		_ = db.Close()
	})
	return db
}

// WithTx executes fn within a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		// sql.ErrTxDone is expected if fn already finished the transaction.
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
