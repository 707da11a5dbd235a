package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// NormalizeEmail returns the form of email used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// User represents a registered user of the task board.
// Email is the natural key; UID is the identity assigned by the client's identity provider.
type User struct {
	ID             uuid.UUID `json:"-"`
	UID            string    `json:"uid"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Password       string    `json:"-"` // Plaintext password, only present during registration
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a new User with a fresh ID and creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: The caller is responsible for hashing Password before storing the user.
func NewUser(uid, email, name, role, password string, now time.Time) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		UID:       uid,
		Email:     NormalizeEmail(email),
		Name:      name,
		Role:      role,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if u.Email == "" {
		return NewValidationError("email", "is required", ErrMissingField)
	}
	if len(u.Password) > MaxPasswordBytes {
		return NewValidationError("password", "must be at most 72 bytes", ErrPasswordTooLong)
	}
	return nil
}

// HasPassword reports whether the user registered with a password.
func (u *User) HasPassword() bool {
	return u.Password != "" || u.HashedPassword != ""
}
