package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMockUserStore(t *testing.T) (*PostgresUserStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresUserStore(db, bcrypt.MinCost, nil), mock
}

func TestPostgresUserStore_Create(t *testing.T) {
	t.Parallel()

	s, mock := newMockUserStore(t)
	user, err := domain.NewUser("uid-1", "ada@example.com", "Ada", "user", "s3cret", time.Now().UTC())
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, "uid-1", "ada@example.com", "Ada", "user",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), user))
	assert.Empty(t, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("s3cret")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserStore_Create_DuplicateEmail(t *testing.T) {
	t.Parallel()

	s, mock := newMockUserStore(t)
	user, err := domain.NewUser("uid-1", "ada@example.com", "Ada", "user", "", time.Now().UTC())
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"})

	err = s.Create(context.Background(), user)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.True(t, store.IsDuplicateError(err))
}

func TestPostgresUserStore_GetByEmail(t *testing.T) {
	t.Parallel()

	query := regexp.QuoteMeta("FROM users")
	columns := []string{"id", "uid", "email", "name", "role", "hashed_password", "created_at", "updated_at"}

	t.Run("found without password", func(t *testing.T) {
		s, mock := newMockUserStore(t)
		id := uuid.New()
		now := time.Now().UTC()
		mock.ExpectQuery(query).WithArgs("ada@example.com").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(id.String(), "uid-1", "ada@example.com", "Ada", "admin", nil, now, now))

		user, err := s.GetByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "admin", user.Role)
		assert.Empty(t, user.HashedPassword)
		assert.Empty(t, user.Password)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockUserStore(t)
		mock.ExpectQuery(query).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

		user, err := s.GetByEmail(context.Background(), "ghost@example.com")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), store.ErrNotFound)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: uniqueViolationCode}), store.ErrDuplicate)
	assert.ErrorIs(t, MapError(&pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}), store.ErrInvalidEntity)
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: checkViolationCode}))
}
