package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindByExternalID finds a customer by its remote platform ID within a tenant
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*Customer, error)

	// FindAll finds customers for a tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Count counts customers for a tenant
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindByExternalID finds a product by its remote platform ID within a tenant
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*Product, error)

	// FindAll finds products for a tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count counts products for a tenant
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByExternalID finds an order with its items by remote platform ID
	// within a tenant
	FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*Order, error)

	// FindAll finds orders for a tenant matching the filter, items included
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// SaveWithItems persists the order header and replaces its full item
	// set in a single transaction
	SaveWithItems(ctx context.Context, order *Order) error

	// Count counts orders for a tenant
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// PlatformEventRepository defines the interface for webhook audit persistence
type PlatformEventRepository interface {
	// Save records a processed webhook delivery
	Save(ctx context.Context, event *PlatformEvent) error

	// FindRecent finds the most recent events for a tenant
	FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]PlatformEvent, error)

	// CountByTopic counts recorded events per topic for a tenant
	CountByTopic(ctx context.Context, tenantID uuid.UUID) ([]EventStat, error)
}
