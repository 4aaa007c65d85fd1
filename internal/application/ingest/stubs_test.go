package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
)

type key struct {
	tenantID   uuid.UUID
	externalID string
}

type memCustomerRepo struct {
	mu   sync.Mutex
	rows map[key]shop.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{rows: make(map[key]shop.Customer)}
}

func (r *memCustomerRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shop.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.TenantID == tenantID && c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepo) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[key{tenantID, externalID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := c
	return &out, nil
}

func (r *memCustomerRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]shop.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shop.Customer
	for _, c := range r.rows {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) Save(ctx context.Context, customer *shop.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[key{customer.TenantID, customer.ExternalID}] = *customer
	return nil
}

func (r *memCustomerRepo) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	rows, _ := r.FindAll(ctx, tenantID, shared.Filter{})
	return int64(len(rows)), nil
}

type memProductRepo struct {
	mu   sync.Mutex
	rows map[key]shop.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{rows: make(map[key]shop.Product)}
}

func (r *memProductRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shop.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.TenantID == tenantID && p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[key{tenantID, externalID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *memProductRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]shop.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shop.Product
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Save(ctx context.Context, product *shop.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[key{product.TenantID, product.ExternalID}] = *product
	return nil
}

func (r *memProductRepo) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	rows, _ := r.FindAll(ctx, tenantID, shared.Filter{})
	return int64(len(rows)), nil
}

type memOrderRepo struct {
	mu   sync.Mutex
	rows map[key]shop.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{rows: make(map[key]shop.Order)}
}

func (r *memOrderRepo) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shop.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.rows {
		if o.TenantID == tenantID && o.ID == id {
			out := o
			return &out, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.rows[key{tenantID, externalID}]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := o
	return &out, nil
}

func (r *memOrderRepo) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]shop.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shop.Order
	for _, o := range r.rows {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) SaveWithItems(ctx context.Context, order *shop.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[key{order.TenantID, order.ExternalID}] = *order
	return nil
}

func (r *memOrderRepo) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	rows, _ := r.FindAll(ctx, tenantID, shared.Filter{})
	return int64(len(rows)), nil
}

type memTenantRepo struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]identity.Tenant
}

func newMemTenantRepo(tenants ...*identity.Tenant) *memTenantRepo {
	r := &memTenantRepo{tenants: make(map[uuid.UUID]identity.Tenant)}
	for _, t := range tenants {
		r.tenants[t.ID] = *t
	}
	return r
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
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tenants {
		if t.ShopDomain == shopDomain {
			out := t
			return &out, nil
		}
	}
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
	_, err := r.FindByShopDomain(ctx, shopDomain)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events []shop.PlatformEvent
}

func (r *memEventRepo) Save(ctx context.Context, event *shop.PlatformEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *memEventRepo) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]shop.PlatformEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shop.PlatformEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *memEventRepo) CountByTopic(ctx context.Context, tenantID uuid.UUID) ([]shop.EventStat, error) {
	return nil, nil
}

// memIdempotency is an always-on dedup store without expiry
type memIdempotency struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{seen: make(map[string]bool)}
}

func (s *memIdempotency) MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[deliveryID] {
		return false, nil
	}
	s.seen[deliveryID] = true
	return true, nil
}

func (s *memIdempotency) IsProcessed(ctx context.Context, deliveryID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[deliveryID], nil
}

func (s *memIdempotency) Close() error { return nil }

// pagedClient serves canned pages per kind
type pagedClient struct {
	pages map[integration.EntityKind][]integration.Page
	calls map[integration.EntityKind]int
	err   map[integration.EntityKind]error
}

func newPagedClient() *pagedClient {
	return &pagedClient{
		pages: make(map[integration.EntityKind][]integration.Page),
		calls: make(map[integration.EntityKind]int),
		err:   make(map[integration.EntityKind]error),
	}
}

func (c *pagedClient) VerifyShop(ctx context.Context, creds integration.Credentials) (*integration.ShopInfo, error) {
	return &integration.ShopInfo{Domain: creds.ShopDomain}, nil
}

func (c *pagedClient) FetchPage(ctx context.Context, creds integration.Credentials, kind integration.EntityKind, cursor string, limit int) (*integration.Page, error) {
	if err := c.err[kind]; err != nil {
		return nil, err
	}
	i := c.calls[kind]
	c.calls[kind]++
	pages := c.pages[kind]
	if i >= len(pages) {
		return &integration.Page{}, nil
	}
	page := pages[i]
	return &page, nil
}
