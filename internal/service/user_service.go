package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// RegisterUserInput carries the fields of a registration request.
type RegisterUserInput struct {
	UID      string
	Email    string
	Name     string
	Role     string
	Password string
}

// UserService provides user registration and lookup.
type UserService interface {
	// Register creates a user. Returns ErrUserExists when the email is taken.
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// Lookup returns the user with email, without any password material.
	// Returns ErrUserNotFound when there is none.
	Lookup(ctx context.Context, email string) (*domain.User, error)
}

type userServiceImpl struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users store.UserStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		users:  users,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

func (s *userServiceImpl) Register(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(input.UID, input.Email, input.Name, input.Role, input.Password, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, user.Email)
	switch {
	case err == nil && existing != nil:
		log.Debug("attempted to register existing email")
		return nil, ErrUserExists
	case err != nil && !errors.Is(err, store.ErrUserNotFound):
		log.Error("failed to check for existing user", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register", "failed to check existing user", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			// Lost a race with a concurrent registration.
			return nil, ErrUserExists
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, NewUserServiceError("register", "failed to save user", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.Bool("has_password", user.HasPassword()))
	return withoutSecrets(user), nil
}

func (s *userServiceImpl) Lookup(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to look up user",
			slog.String("error", err.Error()))
		return nil, NewUserServiceError("lookup", "failed to look up user", err)
	}
	return withoutSecrets(user), nil
}

func withoutSecrets(user *domain.User) *domain.User {
	clean := *user
	clean.Password = ""
	clean.HashedPassword = ""
	return &clean
}
