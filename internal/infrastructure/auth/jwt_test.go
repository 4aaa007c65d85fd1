package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsync/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		TokenExpiration: expiration,
		Issuer:          "shopsync-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)
	tenantID := uuid.New()
	userID := uuid.New()

	issued, err := svc.GenerateToken(tenantID, userID, "jamie@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "jamie@example.com", claims.Email)
	assert.Equal(t, "shopsync-test", claims.Issuer)

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	issued, err := svc.GenerateToken(uuid.New(), uuid.New(), "jamie@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issued, err := newTestService(time.Hour).GenerateToken(uuid.New(), uuid.New(), "jamie@example.com")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:          "a-completely-different-signing-secret",
		TokenExpiration: time.Hour,
		Issuer:          "shopsync-test",
	})
	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}
