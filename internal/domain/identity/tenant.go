package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
)

var shopDomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// Tenant represents an organization with at most one connected shop.
// It is the aggregate root for connection and sync state.
type Tenant struct {
	shared.BaseEntity
	Name          string
	ShopDomain    string
	AccessToken   string
	WebhookSecret string
	Connected     bool
	Active        bool
	SyncStatus    integration.SyncStatus
	SyncMessage   string
	SyncStartedAt *time.Time
	LastSyncAt    *time.Time
}

// NewTenant creates a new tenant with no shop connected yet
func NewTenant(name string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}

	return &Tenant{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Active:     true,
		SyncStatus: integration.SyncStatusNever,
	}, nil
}

// Connect stores verified shop credentials on the tenant
func (t *Tenant) Connect(shopDomain, accessToken string) error {
	shopDomain = NormalizeShopDomain(shopDomain)
	if err := ValidateShopDomain(shopDomain); err != nil {
		return err
	}
	if strings.TrimSpace(accessToken) == "" {
		return shared.NewDomainError("INVALID_ACCESS_TOKEN", "Access token is required")
	}

	t.ShopDomain = shopDomain
	t.AccessToken = accessToken
	t.Connected = true
	t.Touch()

	return nil
}

// Disconnect removes the shop connection. Synced data is kept.
func (t *Tenant) Disconnect() {
	t.Connected = false
	t.AccessToken = ""
	t.Touch()
}

// Credentials returns the connection credentials for client calls
func (t *Tenant) Credentials() integration.Credentials {
	return integration.Credentials{
		ShopDomain:  t.ShopDomain,
		AccessToken: t.AccessToken,
	}
}

// CanSync reports whether a new sync run may start
func (t *Tenant) CanSync() error {
	if !t.Connected {
		return shared.ErrTenantNotConnected
	}
	if t.SyncStatus == integration.SyncStatusInProgress {
		return shared.ErrSyncInProgress
	}
	return nil
}

// BeginSync moves the tenant into a running sync. Rejected while another
// run is in progress.
func (t *Tenant) BeginSync() error {
	if err := t.CanSync(); err != nil {
		return err
	}

	now := time.Now()
	t.SyncStatus = integration.SyncStatusInProgress
	t.SyncMessage = ""
	t.SyncStartedAt = &now
	t.Touch()

	return nil
}

// CompleteSync records a successful run with per-kind counts
func (t *Tenant) CompleteSync(counts integration.SyncCounts) {
	now := time.Now()
	t.SyncStatus = integration.SyncStatusCompleted
	t.SyncMessage = fmt.Sprintf("Synced %d customers, %d products, %d orders",
		counts.Customers, counts.Products, counts.Orders)
	t.LastSyncAt = &now
	t.SyncStartedAt = nil
	t.Touch()
}

// FailSync records a failed run. The message names the stage that broke so
// operators can tell which kind to look at.
func (t *Tenant) FailSync(stage integration.EntityKind, cause error) {
	t.SyncStatus = integration.SyncStatusFailed
	t.SyncMessage = fmt.Sprintf("Sync failed during %s: %v", stage, cause)
	t.SyncStartedAt = nil
	t.Touch()
}

// ExpireSyncLease force-fails a run stuck in progress longer than the lease.
// Returns false when the run is not stuck.
func (t *Tenant) ExpireSyncLease(lease time.Duration) bool {
	if t.SyncStatus != integration.SyncStatusInProgress || t.SyncStartedAt == nil {
		return false
	}
	if time.Since(*t.SyncStartedAt) < lease {
		return false
	}

	t.SyncStatus = integration.SyncStatusFailed
	t.SyncMessage = fmt.Sprintf("Sync abandoned after exceeding %s lease", lease)
	t.SyncStartedAt = nil
	t.Touch()

	return true
}

// NormalizeShopDomain lowercases and trims a shop domain
func NormalizeShopDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// ValidateShopDomain checks the *.myshopify.com shape of a shop domain
func ValidateShopDomain(domain string) error {
	if domain == "" {
		return shared.NewDomainError("INVALID_SHOP_DOMAIN", "Shop domain is required")
	}
	if !shopDomainPattern.MatchString(domain) {
		return shared.NewDomainError("INVALID_SHOP_DOMAIN", "Shop domain must look like example.myshopify.com")
	}
	return nil
}
