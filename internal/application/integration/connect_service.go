package integration

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
)

// ConnectService manages the tenant's shop connection and reports its
// current state
type ConnectService struct {
	tenants   identity.TenantRepository
	client    integration.CatalogClient
	customers shop.CustomerRepository
	products  shop.ProductRepository
	orders    shop.OrderRepository
	events    shop.PlatformEventRepository
	logger    *zap.Logger
}

// NewConnectService creates a new connect service
func NewConnectService(
	tenants identity.TenantRepository,
	client integration.CatalogClient,
	customers shop.CustomerRepository,
	products shop.ProductRepository,
	orders shop.OrderRepository,
	events shop.PlatformEventRepository,
	logger *zap.Logger,
) *ConnectService {
	return &ConnectService{
		tenants:   tenants,
		client:    client,
		customers: customers,
		products:  products,
		orders:    orders,
		events:    events,
		logger:    logger,
	}
}

// ConnectInput carries a shop connection request
type ConnectInput struct {
	ShopDomain  string `json:"shop_domain" binding:"required,shop_domain"`
	AccessToken string `json:"access_token" binding:"required"`
}

// ConnectionInfo is the verified shop profile after connecting
type ConnectionInfo struct {
	ShopDomain    string `json:"shop_domain"`
	ShopName      string `json:"shop_name"`
	Currency      string `json:"currency"`
	WebhookSecret string `json:"webhook_secret"`
}

// Status reports the connection, sync state and mirrored record counts
// for a tenant
type Status struct {
	Connected   bool             `json:"connected"`
	ShopDomain  string           `json:"shop_domain,omitempty"`
	SyncStatus  string           `json:"sync_status"`
	SyncMessage string           `json:"sync_message,omitempty"`
	LastSyncAt  *time.Time       `json:"last_sync_at,omitempty"`
	Customers   int64            `json:"customers"`
	Products    int64            `json:"products"`
	Orders      int64            `json:"orders"`
	EventStats  []shop.EventStat `json:"event_stats"`
}

// Connect verifies the credentials against the remote shop and stores them
// on the tenant. A fresh webhook secret is issued on first connect.
func (s *ConnectService) Connect(ctx context.Context, tenantID uuid.UUID, input ConnectInput) (*ConnectionInfo, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	shopDomain := identity.NormalizeShopDomain(input.ShopDomain)
	if err := identity.ValidateShopDomain(shopDomain); err != nil {
		return nil, err
	}

	// The domain must not be claimed by another tenant
	if existing, err := s.tenants.FindByShopDomain(ctx, shopDomain); err == nil && existing.ID != tenant.ID {
		return nil, shared.NewDomainError("SHOP_ALREADY_CONNECTED", "This shop is connected to another account")
	}

	info, err := s.client.VerifyShop(ctx, integration.Credentials{
		ShopDomain:  shopDomain,
		AccessToken: input.AccessToken,
	})
	if err != nil {
		return nil, err
	}

	if err := tenant.Connect(shopDomain, input.AccessToken); err != nil {
		return nil, err
	}
	if tenant.WebhookSecret == "" {
		tenant.WebhookSecret = newWebhookSecret()
	}

	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Shop connected",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("shop_domain", shopDomain),
	)

	return &ConnectionInfo{
		ShopDomain:    shopDomain,
		ShopName:      info.Name,
		Currency:      info.Currency,
		WebhookSecret: tenant.WebhookSecret,
	}, nil
}

// Disconnect drops the shop credentials. Mirrored data stays.
func (s *ConnectService) Disconnect(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return err
	}

	tenant.Disconnect()
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return err
	}

	s.logger.Info("Shop disconnected", zap.String("tenant_id", tenantID.String()))
	return nil
}

// GetStatus reports the connection and sync state with record counts
func (s *ConnectService) GetStatus(ctx context.Context, tenantID uuid.UUID) (*Status, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	customers, err := s.customers.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.Count(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stats, err := s.events.CountByTopic(ctx, tenantID)
	if err != nil {
		s.logger.Warn("Failed to load event stats",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
		stats = nil
	}

	return &Status{
		Connected:   tenant.Connected,
		ShopDomain:  tenant.ShopDomain,
		SyncStatus:  tenant.SyncStatus.String(),
		SyncMessage: tenant.SyncMessage,
		LastSyncAt:  tenant.LastSyncAt,
		Customers:   customers,
		Products:    products,
		Orders:      orders,
		EventStats:  stats,
	}, nil
}

// newWebhookSecret issues a random per-tenant signing secret
func newWebhookSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
