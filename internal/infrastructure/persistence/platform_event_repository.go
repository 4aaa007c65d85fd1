package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlatformEventRepository implements PlatformEventRepository using GORM
type GormPlatformEventRepository struct {
	db *gorm.DB
}

// NewGormPlatformEventRepository creates a new GormPlatformEventRepository
func NewGormPlatformEventRepository(db *gorm.DB) *GormPlatformEventRepository {
	return &GormPlatformEventRepository{db: db}
}

// Save records a processed webhook delivery
func (r *GormPlatformEventRepository) Save(ctx context.Context, event *shop.PlatformEvent) error {
	var model models.PlatformEventModel
	model.FromDomain(event)
	return r.db.WithContext(ctx).Save(&model).Error
}

// FindRecent finds the most recent events for a tenant
func (r *GormPlatformEventRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, limit int) ([]shop.PlatformEvent, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var eventModels []models.PlatformEventModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]shop.PlatformEvent, len(eventModels))
	for i := range eventModels {
		events[i] = *eventModels[i].ToDomain()
	}
	return events, nil
}

// CountByTopic counts recorded events per topic for a tenant
func (r *GormPlatformEventRepository) CountByTopic(ctx context.Context, tenantID uuid.UUID) ([]shop.EventStat, error) {
	var stats []shop.EventStat
	err := r.db.WithContext(ctx).Model(&models.PlatformEventModel{}).
		Select("topic, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("topic").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

var _ shop.PlatformEventRepository = (*GormPlatformEventRepository)(nil)
