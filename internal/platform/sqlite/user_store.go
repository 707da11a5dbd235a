package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// UserStore implements store.UserStore on SQLite.
type UserStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewUserStore creates a SQLite-backed UserStore.
func NewUserStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	if err := store.HashUserPassword(user, s.bcryptCost); err != nil {
		return err
	}

	var hashed sql.NullString
	if user.HashedPassword != "" {
		hashed = sql.NullString{String: user.HashedPassword, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, uid, email, name, role, hashed_password, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID.String(),
		user.UID,
		user.Email,
		user.Name,
		user.Role,
		hashed,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrEmailExists
		}
		s.logger.Error("insert user", slog.String("error", err.Error()))
		return MapError(err)
	}
	return nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var (
		user                 domain.User
		hashed               sql.NullString
		createdAt, updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, uid, email, name, role, hashed_password, created_at, updated_at
		 FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.UID, &user.Email, &user.Name, &user.Role, &hashed, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, MapError(err)
	}

	user.HashedPassword = hashed.String
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
