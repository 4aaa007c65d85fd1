package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login and the current-user lookup.
// Registration creates the tenant and its first user in one step.
type AuthService struct {
	tenants identity.TenantRepository
	users   identity.UserRepository
	jwt     *auth.JWTService
	logger  *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	tenants identity.TenantRepository,
	users identity.UserRepository,
	jwt *auth.JWTService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		tenants: tenants,
		users:   users,
		jwt:     jwt,
		logger:  logger,
	}
}

// RegisterInput carries a registration request
type RegisterInput struct {
	TenantName string `json:"tenant_name" binding:"required,min=1,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8,max=72"`
	Name       string `json:"name" binding:"required,min=1,max=200"`
}

// Session is an issued login with its subject
type Session struct {
	Token    *auth.IssuedToken `json:"token"`
	UserID   uuid.UUID         `json:"user_id"`
	TenantID uuid.UUID         `json:"tenant_id"`
	Email    string            `json:"email"`
	Name     string            `json:"name"`
}

// Register creates a tenant with its first user and issues a session
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	exists, err := s.users.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	tenant, err := identity.NewTenant(input.TenantName)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(tenant.ID, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("email", user.Email),
	)

	return s.issueSession(user)
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.Active || !user.CheckPassword(password) {
		return nil, shared.ErrUnauthorized
	}

	user.RecordLogin()
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Warn("Failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return s.issueSession(user)
}

// CurrentUser loads the user behind a validated token
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	return s.users.FindByID(ctx, userID)
}

// CurrentTenant loads the tenant behind a validated token
func (s *AuthService) CurrentTenant(ctx context.Context, tenantID uuid.UUID) (*identity.Tenant, error) {
	return s.tenants.FindByID(ctx, tenantID)
}

func (s *AuthService) issueSession(user *identity.User) (*Session, error) {
	token, err := s.jwt.GenerateToken(user.TenantID, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:    token,
		UserID:   user.ID,
		TenantID: user.TenantID,
		Email:    user.Email,
		Name:     user.Name,
	}, nil
}
