package store

import (
	"context"
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// It hashes a plaintext password internally when one is present.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	// The returned user never carries a plaintext password.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// HashUserPassword replaces user.Password with its bcrypt hash in user.HashedPassword.
// Users registered without a password are left untouched.
func HashUserPassword(user *domain.User, cost int) error {
	if user.Password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hash)
	user.Password = ""
	return nil
}
