package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsync/backend/internal/infrastructure/auth"
	"github.com/shopsync/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		TokenExpiration: expiration,
		Issuer:          "shopsync-test",
	})
}

func newProtectedRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(JWTMiddlewareConfig{
		JWTService: svc,
		SkipPaths:  []string{"/health"},
		SkipPathPrefixes: []string{
			"/api/v1/webhooks",
		},
	}))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.POST("/api/v1/webhooks/shopify", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   GetJWTUserID(c),
			"tenant_id": GetJWTTenantID(c),
		})
	})
	return r
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	tenantID, userID := uuid.New(), uuid.New()
	issued, err := svc.GenerateToken(tenantID, userID, "a@b.com")
	require.NoError(t, err)

	r := newProtectedRouter(svc)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), tenantID.String())
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	r := newProtectedRouter(newTestJWTService(time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
}

func TestJWTMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := newProtectedRouter(newTestJWTService(time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	issued, err := svc.GenerateToken(uuid.New(), uuid.New(), "a@b.com")
	require.NoError(t, err)

	r := newProtectedRouter(newTestJWTService(time.Hour))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
}

func TestJWTMiddlewareRejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	issued, err := svc.GenerateToken(uuid.New(), uuid.New(), "a@b.com")
	require.NoError(t, err)

	other := auth.NewJWTService(config.JWTConfig{
		Secret:          "another-secret-also-32-characters!!!",
		TokenExpiration: time.Hour,
		Issuer:          "shopsync-test",
	})
	r := newProtectedRouter(other)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
}

func TestJWTMiddlewareSkipsConfiguredPaths(t *testing.T) {
	r := newProtectedRouter(newTestJWTService(time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/shopify", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
