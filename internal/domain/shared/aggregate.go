package shared

import (
	"github.com/google/uuid"
)

// TenantEntity extends BaseEntity with multi-tenant scoping. Every record
// synced from a connected shop hangs off exactly one tenant.
type TenantEntity struct {
	BaseEntity
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewTenantEntity creates a new tenant-scoped entity
func NewTenantEntity(tenantID uuid.UUID) TenantEntity {
	return TenantEntity{
		BaseEntity: NewBaseEntity(),
		TenantID:   tenantID,
	}
}

// BelongsTo reports whether the entity is owned by the given tenant
func (t *TenantEntity) BelongsTo(tenantID uuid.UUID) bool {
	return t.TenantID == tenantID
}
