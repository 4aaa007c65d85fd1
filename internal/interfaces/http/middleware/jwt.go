package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/infrastructure/auth"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// Context keys for authenticated request data
const (
	ContextKeyJWTClaims = "jwt_claims"
	ContextKeyUserID    = "jwt_user_id"
	ContextKeyTenantID  = "jwt_tenant_id"
)

// JWTMiddlewareConfig holds configuration for the JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are exact paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// JWTAuthMiddleware validates the bearer token and stores the claims
// on the request context
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		token, err := extractBearerToken(c)
		if err != nil {
			abortAuthError(c, dto.ErrCodeUnauthorized, err.Error())
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Token validation failed",
					zap.String("path", path),
					zap.Error(err),
				)
			}
			code, message := authErrorCode(err)
			abortAuthError(c, code, message)
			return
		}

		c.Set(ContextKeyJWTClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyTenantID, claims.TenantID)
		c.Next()
	}
}

// extractBearerToken reads the token from the Authorization header
func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errors.New("authorization header is missing")
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errors.New("authorization header must be in 'Bearer <token>' format")
	}
	return token, nil
}

// authErrorCode maps token validation errors to response codes
func authErrorCode(err error) (code, message string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return dto.ErrCodeTokenInvalid, "Token is not yet valid"
	case errors.Is(err, auth.ErrMissingTenantID), errors.Is(err, auth.ErrMissingUserID), errors.Is(err, auth.ErrInvalidClaims):
		return dto.ErrCodeTokenInvalid, "Token claims are invalid"
	default:
		return dto.ErrCodeTokenInvalid, "Token is invalid"
	}
}

func abortAuthError(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// GetJWTClaims returns the validated claims from the context, if any
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyJWTClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTUserID returns the authenticated user ID, or "" when unauthenticated
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// GetJWTTenantID returns the authenticated tenant ID, or "" when unauthenticated
func GetJWTTenantID(c *gin.Context) string {
	return c.GetString(ContextKeyTenantID)
}
