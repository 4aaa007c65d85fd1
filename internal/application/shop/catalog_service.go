package shop

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
)

// CatalogService serves read access to the mirrored records. All lookups
// are tenant scoped; writes happen only through ingestion.
type CatalogService struct {
	customers shop.CustomerRepository
	products  shop.ProductRepository
	orders    shop.OrderRepository
	events    shop.PlatformEventRepository
	logger    *zap.Logger
}

// NewCatalogService creates a new catalog read service
func NewCatalogService(
	customers shop.CustomerRepository,
	products shop.ProductRepository,
	orders shop.OrderRepository,
	events shop.PlatformEventRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		customers: customers,
		products:  products,
		orders:    orders,
		events:    events,
		logger:    logger,
	}
}

// ListCustomers returns one page of customers for the tenant
func (s *CatalogService) ListCustomers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[shop.Customer], error) {
	items, err := s.customers.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customers.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// GetCustomer returns one customer by ID within the tenant
func (s *CatalogService) GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (*shop.Customer, error) {
	return s.customers.FindByID(ctx, tenantID, id)
}

// ListProducts returns one page of products for the tenant
func (s *CatalogService) ListProducts(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[shop.Product], error) {
	items, err := s.products.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// GetProduct returns one product by ID within the tenant
func (s *CatalogService) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*shop.Product, error) {
	return s.products.FindByID(ctx, tenantID, id)
}

// ListOrders returns one page of orders with items for the tenant
func (s *CatalogService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[shop.Order], error) {
	items, err := s.orders.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &page, nil
}

// GetOrder returns one order with its items by ID within the tenant
func (s *CatalogService) GetOrder(ctx context.Context, tenantID, id uuid.UUID) (*shop.Order, error) {
	return s.orders.FindByID(ctx, tenantID, id)
}

// ListRecentEvents returns the latest recorded webhook deliveries
func (s *CatalogService) ListRecentEvents(ctx context.Context, tenantID uuid.UUID, limit int) ([]shop.PlatformEvent, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.events.FindRecent(ctx, tenantID, limit)
}
