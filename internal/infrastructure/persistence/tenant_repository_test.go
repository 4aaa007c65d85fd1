package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/shared"
)

func seedTenant(t *testing.T, repo *GormTenantRepository, name, domain string) *identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant(name)
	require.NoError(t, err)
	if domain != "" {
		require.NoError(t, tenant.Connect(domain, "shpat_token"))
	}
	require.NoError(t, repo.Save(context.Background(), tenant))
	return tenant
}

func TestTenantRepositorySaveAndFind(t *testing.T) {
	repo := NewGormTenantRepository(newTestDB(t))
	ctx := context.Background()

	tenant := seedTenant(t, repo, "Acme", "acme.myshopify.com")

	found, err := repo.FindByID(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", found.Name)
	assert.True(t, found.Connected)

	byDomain, err := repo.FindByShopDomain(ctx, "ACME.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, byDomain.ID)

	exists, err := repo.ExistsByShopDomain(ctx, "acme.myshopify.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByShopDomain(ctx, "other.myshopify.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTenantRepositoryFindDueForSync(t *testing.T) {
	repo := NewGormTenantRepository(newTestDB(t))
	ctx := context.Background()
	cutoff := time.Now().Add(-15 * time.Minute)

	neverSynced := seedTenant(t, repo, "Never", "never.myshopify.com")

	stale := seedTenant(t, repo, "Stale", "stale.myshopify.com")
	past := time.Now().Add(-time.Hour)
	stale.LastSyncAt = &past
	require.NoError(t, repo.Save(ctx, stale))

	fresh := seedTenant(t, repo, "Fresh", "fresh.myshopify.com")
	now := time.Now()
	fresh.LastSyncAt = &now
	require.NoError(t, repo.Save(ctx, fresh))

	running := seedTenant(t, repo, "Running", "running.myshopify.com")
	require.NoError(t, running.BeginSync())
	require.NoError(t, repo.Save(ctx, running))

	// not connected yet, never due
	seedTenant(t, repo, "Unconnected", "")

	due, err := repo.FindDueForSync(ctx, cutoff)
	require.NoError(t, err)

	ids := make(map[string]bool, len(due))
	for i := range due {
		ids[due[i].ID.String()] = true
	}
	assert.Len(t, due, 2)
	assert.True(t, ids[neverSynced.ID.String()])
	assert.True(t, ids[stale.ID.String()])
}

func TestTenantRepositoryFindStuckInProgress(t *testing.T) {
	repo := NewGormTenantRepository(newTestDB(t))
	ctx := context.Background()

	stuck := seedTenant(t, repo, "Stuck", "stuck.myshopify.com")
	require.NoError(t, stuck.BeginSync())
	longAgo := time.Now().Add(-2 * time.Hour)
	stuck.SyncStartedAt = &longAgo
	require.NoError(t, repo.Save(ctx, stuck))

	active := seedTenant(t, repo, "Active", "active.myshopify.com")
	require.NoError(t, active.BeginSync())
	require.NoError(t, repo.Save(ctx, active))

	found, err := repo.FindStuckInProgress(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stuck.ID, found[0].ID)
}

func TestTenantRepositoryAllowsManyUnconnected(t *testing.T) {
	repo := NewGormTenantRepository(newTestDB(t))

	// registration creates tenants without a shop domain
	for i := 0; i < 3; i++ {
		seedTenant(t, repo, fmt.Sprintf("Tenant %d", i), "")
	}
}
