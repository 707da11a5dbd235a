package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid user", func(t *testing.T) {
		user, err := NewUser("uid-1", " ada@example.com ", "Ada", "member", "", now)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.False(t, user.HasPassword())
	})

	t.Run("password is kept for hashing", func(t *testing.T) {
		user, err := NewUser("uid-1", "ada@example.com", "Ada", "member", "s3cret", now)

		require.NoError(t, err)
		assert.True(t, user.HasPassword())
	})

	t.Run("password longer than bcrypt accepts", func(t *testing.T) {
		user, err := NewUser("uid-1", "ada@example.com", "Ada", "member", strings.Repeat("x", MaxPasswordBytes+1), now)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrPasswordTooLong)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("password at the bcrypt limit", func(t *testing.T) {
		_, err := NewUser("uid-1", "ada@example.com", "Ada", "member", strings.Repeat("x", MaxPasswordBytes), now)

		assert.NoError(t, err)
	})

	t.Run("missing email", func(t *testing.T) {
		user, err := NewUser("uid-1", "", "Ada", "member", "", now)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrMissingField)
	})
}
