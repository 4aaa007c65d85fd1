package shop

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopsync/backend/internal/domain/shared"
)

// PlatformEvent is an audit row for a processed webhook delivery
type PlatformEvent struct {
	shared.TenantEntity
	Topic      string
	DeliveryID string
	ExternalID string
	ShopDomain string
}

// NewPlatformEvent records a webhook delivery against a tenant
func NewPlatformEvent(tenantID uuid.UUID, topic, deliveryID, externalID, shopDomain string) (*PlatformEvent, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, shared.NewDomainError("INVALID_TOPIC", "Event topic is required")
	}

	return &PlatformEvent{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Topic:        topic,
		DeliveryID:   deliveryID,
		ExternalID:   externalID,
		ShopDomain:   shopDomain,
	}, nil
}

// EventStat is a per-topic count of recorded webhook deliveries
type EventStat struct {
	Topic string `json:"topic"`
	Count int64  `json:"count"`
}
