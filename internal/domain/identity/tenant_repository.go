package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByShopDomain finds a tenant by its connected shop domain
	FindByShopDomain(ctx context.Context, shopDomain string) (*Tenant, error)

	// FindDueForSync finds active connected tenants whose last sync is
	// older than the interval (or that never synced) and that are not
	// currently running
	FindDueForSync(ctx context.Context, olderThan time.Time) ([]Tenant, error)

	// FindStuckInProgress finds tenants whose running sync started before
	// the deadline, for lease expiry
	FindStuckInProgress(ctx context.Context, startedBefore time.Time) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// ExistsByShopDomain checks if a tenant with the given shop domain exists
	ExistsByShopDomain(ctx context.Context, shopDomain string) (bool, error)
}
