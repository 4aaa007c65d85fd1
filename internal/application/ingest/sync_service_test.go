package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
)

func connectedTenant(t *testing.T) *identity.Tenant {
	t.Helper()
	tenant, err := identity.NewTenant("Sync Shop")
	require.NoError(t, err)
	require.NoError(t, tenant.Connect("sync.myshopify.com", "token"))
	return tenant
}

func TestRunSyncHappyPath(t *testing.T) {
	tenant := connectedTenant(t)
	tenants := newMemTenantRepo(tenant)
	reconciler, customers, products, orders := newTestReconciler()

	client := newPagedClient()
	client.pages[integration.KindCustomer] = []integration.Page{
		{Records: []json.RawMessage{
			json.RawMessage(`{"id": 1, "email": "a@x.com"}`),
			json.RawMessage(`{"id": 2, "email": "b@x.com"}`),
		}},
	}
	client.pages[integration.KindProduct] = []integration.Page{
		{Records: []json.RawMessage{json.RawMessage(`{"id": 10, "title": "P"}`)}},
	}
	client.pages[integration.KindOrder] = []integration.Page{
		{Records: []json.RawMessage{json.RawMessage(`{"id": 100, "customer": {"id": 1}}`)}},
	}

	svc := NewSyncService(tenants, client, reconciler, 250, zap.NewNop())

	require.NoError(t, svc.RunSync(context.Background(), tenant.ID))

	saved, err := tenants.FindByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.SyncStatusCompleted, saved.SyncStatus)
	assert.Equal(t, "Synced 2 customers, 1 products, 1 orders", saved.SyncMessage)
	assert.NotNil(t, saved.LastSyncAt)
	assert.Nil(t, saved.SyncStartedAt)

	cc, _ := customers.Count(context.Background(), tenant.ID)
	pc, _ := products.Count(context.Background(), tenant.ID)
	oc, _ := orders.Count(context.Background(), tenant.ID)
	assert.EqualValues(t, 2, cc)
	assert.EqualValues(t, 1, pc)
	assert.EqualValues(t, 1, oc)
}

func TestSyncAllReportsCounts(t *testing.T) {
	tenant := connectedTenant(t)
	tenants := newMemTenantRepo(tenant)
	reconciler, _, _, _ := newTestReconciler()

	client := newPagedClient()
	client.pages[integration.KindCustomer] = []integration.Page{
		{Records: []json.RawMessage{
			json.RawMessage(`{"id": 1}`),
			json.RawMessage(`{"id": 2}`),
		}},
	}
	client.pages[integration.KindOrder] = []integration.Page{
		{Records: []json.RawMessage{json.RawMessage(`{"id": 100}`)}},
	}

	svc := NewSyncService(tenants, client, reconciler, 250, zap.NewNop())

	result, err := svc.SyncAll(context.Background(), tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Customers)
	assert.Equal(t, 0, result.Products)
	assert.Equal(t, 1, result.Orders)
	assert.Equal(t, "Synced 2 customers, 0 products, 1 orders", result.Message)
	assert.False(t, result.CompletedAt.IsZero())
}

func TestRunSyncFollowsCursor(t *testing.T) {
	tenant := connectedTenant(t)
	tenants := newMemTenantRepo(tenant)
	reconciler, customers, _, _ := newTestReconciler()

	client := newPagedClient()
	client.pages[integration.KindCustomer] = []integration.Page{
		{Records: []json.RawMessage{json.RawMessage(`{"id": 1}`)}, NextCursor: "page2"},
		{Records: []json.RawMessage{json.RawMessage(`{"id": 2}`)}},
	}

	svc := NewSyncService(tenants, client, reconciler, 250, zap.NewNop())
	require.NoError(t, svc.RunSync(context.Background(), tenant.ID))

	assert.Equal(t, 2, client.calls[integration.KindCustomer])
	count, _ := customers.Count(context.Background(), tenant.ID)
	assert.EqualValues(t, 2, count)
}

func TestRunSyncFailureKeepsPartialProgress(t *testing.T) {
	tenant := connectedTenant(t)
	tenants := newMemTenantRepo(tenant)
	reconciler, customers, _, _ := newTestReconciler()

	client := newPagedClient()
	client.pages[integration.KindCustomer] = []integration.Page{
		{Records: []json.RawMessage{json.RawMessage(`{"id": 1}`)}},
	}
	client.err[integration.KindProduct] = integration.ErrUnavailable

	svc := NewSyncService(tenants, client, reconciler, 250, zap.NewNop())

	err := svc.RunSync(context.Background(), tenant.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, integration.ErrUnavailable)

	saved, findErr := tenants.FindByID(context.Background(), tenant.ID)
	require.NoError(t, findErr)
	assert.Equal(t, integration.SyncStatusFailed, saved.SyncStatus)
	assert.Contains(t, saved.SyncMessage, "products")
	assert.Nil(t, saved.LastSyncAt)

	// Customers ingested before the failure survive
	count, _ := customers.Count(context.Background(), tenant.ID)
	assert.EqualValues(t, 1, count)
}

func TestRunSyncRejectsDisconnectedTenant(t *testing.T) {
	tenant, err := identity.NewTenant("No Shop")
	require.NoError(t, err)
	tenants := newMemTenantRepo(tenant)
	reconciler, _, _, _ := newTestReconciler()

	svc := NewSyncService(tenants, newPagedClient(), reconciler, 250, zap.NewNop())

	assert.ErrorIs(t, svc.RunSync(context.Background(), tenant.ID), shared.ErrTenantNotConnected)
}

func TestRunSyncRejectsConcurrentRun(t *testing.T) {
	tenant := connectedTenant(t)
	require.NoError(t, tenant.BeginSync())
	tenants := newMemTenantRepo(tenant)
	reconciler, _, _, _ := newTestReconciler()

	svc := NewSyncService(tenants, newPagedClient(), reconciler, 250, zap.NewNop())

	assert.ErrorIs(t, svc.RunSync(context.Background(), tenant.ID), shared.ErrSyncInProgress)
}

func TestRunSyncUnknownTenant(t *testing.T) {
	tenants := newMemTenantRepo()
	reconciler, _, _, _ := newTestReconciler()
	svc := NewSyncService(tenants, newPagedClient(), reconciler, 250, zap.NewNop())

	tenant := connectedTenant(t)
	err := svc.RunSync(context.Background(), tenant.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
