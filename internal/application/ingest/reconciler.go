package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
)

const lockStripes = 64

// Reconciler upserts raw remote records into tenant-scoped entities.
// Upserts are keyed by (tenant, kind, external ID) and serialized through
// striped locks so a bulk sync page and a webhook for the same record
// cannot interleave.
type Reconciler struct {
	customers shop.CustomerRepository
	products  shop.ProductRepository
	orders    shop.OrderRepository
	logger    *zap.Logger

	locks [lockStripes]sync.Mutex
}

// NewReconciler creates a new reconciler
func NewReconciler(
	customers shop.CustomerRepository,
	products shop.ProductRepository,
	orders shop.OrderRepository,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		customers: customers,
		products:  products,
		orders:    orders,
		logger:    logger,
	}
}

// UpsertRaw routes a raw record to the upsert for its kind
func (r *Reconciler) UpsertRaw(ctx context.Context, tenantID uuid.UUID, kind integration.EntityKind, raw json.RawMessage) error {
	switch kind {
	case integration.KindCustomer:
		_, err := r.UpsertCustomer(ctx, tenantID, raw)
		return err
	case integration.KindProduct:
		_, err := r.UpsertProduct(ctx, tenantID, raw)
		return err
	case integration.KindOrder:
		_, err := r.UpsertOrder(ctx, tenantID, raw)
		return err
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}
}

// UpsertCustomer maps and persists a customer record. An existing row with
// the same external ID is fully overwritten.
func (r *Reconciler) UpsertCustomer(ctx context.Context, tenantID uuid.UUID, raw json.RawMessage) (*shop.Customer, error) {
	customer, err := MapCustomer(tenantID, raw)
	if err != nil {
		return nil, err
	}

	unlock := r.lock(tenantID, integration.KindCustomer, customer.ExternalID)
	defer unlock()

	existing, err := r.customers.FindByExternalID(ctx, tenantID, customer.ExternalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		customer.ID = existing.ID
		customer.CreatedAt = existing.CreatedAt
	}

	if err := r.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpsertProduct maps and persists a product record. An existing row with
// the same external ID is fully overwritten.
func (r *Reconciler) UpsertProduct(ctx context.Context, tenantID uuid.UUID, raw json.RawMessage) (*shop.Product, error) {
	product, err := MapProduct(tenantID, raw)
	if err != nil {
		return nil, err
	}

	unlock := r.lock(tenantID, integration.KindProduct, product.ExternalID)
	defer unlock()

	existing, err := r.products.FindByExternalID(ctx, tenantID, product.ExternalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
	}

	if err := r.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpsertOrder maps and persists an order with its full line item set.
// Customer and product links are resolved best effort: records synced
// later do not backfill orders ingested before them.
func (r *Reconciler) UpsertOrder(ctx context.Context, tenantID uuid.UUID, raw json.RawMessage) (*shop.Order, error) {
	order, err := MapOrder(tenantID, raw)
	if err != nil {
		return nil, err
	}

	unlock := r.lock(tenantID, integration.KindOrder, order.ExternalID)
	defer unlock()

	existing, err := r.orders.FindByExternalID(ctx, tenantID, order.ExternalID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		order.ID = existing.ID
		// Re-parent the freshly mapped items onto the surviving order ID
		order.ReplaceItems(order.Items)
	}

	r.resolveLinks(ctx, tenantID, order)

	if err := r.orders.SaveWithItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// resolveLinks attaches synced customer and product IDs where the
// referenced records already exist. Misses are left nil, not errors.
func (r *Reconciler) resolveLinks(ctx context.Context, tenantID uuid.UUID, order *shop.Order) {
	if order.CustomerExternalID != "" {
		customer, err := r.customers.FindByExternalID(ctx, tenantID, order.CustomerExternalID)
		if err == nil {
			order.LinkCustomer(customer.ID)
		} else if !errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("Customer link lookup failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("customer_external_id", order.CustomerExternalID),
				zap.Error(err),
			)
		}
	}

	for i := range order.Items {
		extID := order.Items[i].ProductExternalID
		if extID == "" {
			continue
		}
		product, err := r.products.FindByExternalID(ctx, tenantID, extID)
		if err == nil {
			id := product.ID
			order.Items[i].ProductID = &id
		} else if !errors.Is(err, shared.ErrNotFound) {
			r.logger.Warn("Product link lookup failed",
				zap.String("tenant_id", tenantID.String()),
				zap.String("product_external_id", extID),
				zap.Error(err),
			)
		}
	}
}

// lock takes the stripe for an upsert key and returns its unlock func
func (r *Reconciler) lock(tenantID uuid.UUID, kind integration.EntityKind, externalID string) func() {
	h := fnv.New32a()
	h.Write(tenantID[:])
	h.Write([]byte(kind))
	h.Write([]byte(externalID))
	mu := &r.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}
