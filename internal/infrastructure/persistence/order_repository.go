package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID within a tenant
func (r *GormOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*shop.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID finds an order with its items by remote platform ID within a tenant
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, tenantID uuid.UUID, externalID string) (*shop.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND external_id = ?", tenantID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders for a tenant matching the filter, items included
func (r *GormOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]shop.Order, error) {
	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("order_number LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]shop.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// SaveWithItems persists the order header and replaces its full item set.
// Header save, item delete and item insert run in one transaction so a
// redelivered payload can never leave a half-replaced item set behind.
func (r *GormOrderRepository) SaveWithItems(ctx context.Context, order *shop.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.OrderModel
		model.FromDomain(order)
		if err := tx.Omit("Items").Save(&model).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).
			Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}

		if len(order.Items) == 0 {
			return nil
		}

		itemModels := make([]models.OrderItemModel, len(order.Items))
		for i := range order.Items {
			itemModels[i].FromDomain(&order.Items[i])
		}
		return tx.Create(&itemModels).Error
	})
}

// Count counts orders for a tenant
func (r *GormOrderRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

var _ shop.OrderRepository = (*GormOrderRepository)(nil)
