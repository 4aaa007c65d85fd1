package identity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/auth"
	"github.com/shopsync/backend/internal/infrastructure/config"
)

type memTenantRepo struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]identity.Tenant
}

func newMemTenantRepo() *memTenantRepo {
	return &memTenantRepo{tenants: make(map[uuid.UUID]identity.Tenant)}
}

func (r *memTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tenants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *memTenantRepo) FindByShopDomain(ctx context.Context, shopDomain string) (*identity.Tenant, error) {
	return nil, shared.ErrNotFound
}

func (r *memTenantRepo) FindDueForSync(ctx context.Context, olderThan time.Time) ([]identity.Tenant, error) {
	return nil, nil
}

func (r *memTenantRepo) FindStuckInProgress(ctx context.Context, startedBefore time.Time) ([]identity.Tenant, error) {
	return nil, nil
}

func (r *memTenantRepo) Save(ctx context.Context, tenant *identity.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenants[tenant.ID] = *tenant
	return nil
}

func (r *memTenantRepo) ExistsByShopDomain(ctx context.Context, shopDomain string) (bool, error) {
	return false, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]identity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepo) Save(ctx context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func newTestAuthService() (*AuthService, *memTenantRepo, *memUserRepo) {
	tenants := newMemTenantRepo()
	users := newMemUserRepo()
	jwtSvc := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		TokenExpiration: time.Hour,
		Issuer:          "shopsync-test",
	})
	return NewAuthService(tenants, users, jwtSvc, zap.NewNop()), tenants, users
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		TenantName: "Acme Outfitters",
		Email:      "owner@acme.com",
		Password:   "s3cret-pass",
		Name:       "Ada Owner",
	}
}

func TestRegisterCreatesTenantAndUser(t *testing.T) {
	svc, tenants, users := newTestAuthService()

	session, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	require.NotNil(t, session.Token)
	assert.NotEmpty(t, session.Token.Token)
	assert.Equal(t, "Bearer", session.Token.TokenType)

	tenant, err := tenants.FindByID(context.Background(), session.TenantID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Outfitters", tenant.Name)
	assert.False(t, tenant.Connected)

	user, err := users.FindByID(context.Background(), session.UserID)
	require.NoError(t, err)
	assert.Equal(t, "owner@acme.com", user.Email)
	assert.Equal(t, tenant.ID, user.TenantID)
	assert.True(t, user.CheckPassword("s3cret-pass"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterInput())
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	input := validRegisterInput()
	input.Password = "short"
	_, err := svc.Register(context.Background(), input)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _, users := newTestAuthService()

	registered, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "owner@acme.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, session.UserID)
	assert.Equal(t, registered.TenantID, session.TenantID)

	user, err := users.FindByID(context.Background(), session.UserID)
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "owner@acme.com", "wrong-pass")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), "ghost@acme.com", "whatever1")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _, users := newTestAuthService()

	session, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	user, err := users.FindByID(context.Background(), session.UserID)
	require.NoError(t, err)
	user.Active = false
	require.NoError(t, users.Save(context.Background(), user))

	_, err = svc.Login(context.Background(), "owner@acme.com", "s3cret-pass")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}
