package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByShopDomain finds a tenant by its connected shop domain
func (r *GormTenantRepository) FindByShopDomain(ctx context.Context, shopDomain string) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("shop_domain = ?", identity.NormalizeShopDomain(shopDomain)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindDueForSync finds active connected tenants due for a periodic sync.
// Tenants with a run already in progress are skipped.
func (r *GormTenantRepository) FindDueForSync(ctx context.Context, olderThan time.Time) ([]identity.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND connected = ?", true, true).
		Where("sync_status <> ?", integration.SyncStatusInProgress.String()).
		Where("last_sync_at IS NULL OR last_sync_at < ?", olderThan).
		Order("last_sync_at ASC NULLS FIRST").
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return toDomainTenants(tenantModels), nil
}

// FindStuckInProgress finds tenants whose running sync started before the deadline
func (r *GormTenantRepository) FindStuckInProgress(ctx context.Context, startedBefore time.Time) ([]identity.Tenant, error) {
	var tenantModels []models.TenantModel
	if err := r.db.WithContext(ctx).
		Where("sync_status = ?", integration.SyncStatusInProgress.String()).
		Where("sync_started_at IS NOT NULL AND sync_started_at < ?", startedBefore).
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}
	return toDomainTenants(tenantModels), nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	var model models.TenantModel
	model.FromDomain(tenant)
	return r.db.WithContext(ctx).Save(&model).Error
}

// ExistsByShopDomain checks if a tenant with the given shop domain exists
func (r *GormTenantRepository) ExistsByShopDomain(ctx context.Context, shopDomain string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TenantModel{}).
		Where("shop_domain = ?", identity.NormalizeShopDomain(shopDomain)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func toDomainTenants(tenantModels []models.TenantModel) []identity.Tenant {
	tenants := make([]identity.Tenant, len(tenantModels))
	for i := range tenantModels {
		tenants[i] = *tenantModels[i].ToDomain()
	}
	return tenants
}

var _ identity.TenantRepository = (*GormTenantRepository)(nil)
