package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser(tenantID, " Jamie@Example.COM ", "s3cret-pass", " Jamie ")
		require.NoError(t, err)

		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "jamie@example.com", user.Email)
		assert.Equal(t, "Jamie", user.Name)
		assert.True(t, user.Active)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.CheckPassword("s3cret-pass"))
		assert.False(t, user.CheckPassword("wrong"))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "a@b", "two@@example.com"} {
			_, err := NewUser(tenantID, email, "s3cret-pass", "Jamie")
			assert.Error(t, err, email)
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "jamie@example.com", "short", "Jamie")
		assert.Error(t, err)
	})
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser(uuid.New(), "jamie@example.com", "s3cret-pass", "Jamie")
	require.NoError(t, err)

	require.NoError(t, user.ChangePassword("an0ther-pass"))
	assert.True(t, user.CheckPassword("an0ther-pass"))
	assert.False(t, user.CheckPassword("s3cret-pass"))

	assert.Error(t, user.ChangePassword("nope"))
}

func TestUserRecordLogin(t *testing.T) {
	user, err := NewUser(uuid.New(), "jamie@example.com", "s3cret-pass", "Jamie")
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)
}
