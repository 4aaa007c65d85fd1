package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/shared"
)

// ProductStatus represents the remote publication status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
	ProductStatusDraft    ProductStatus = "DRAFT"
)

// IsValid checks if the product status is a known value
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusArchived, ProductStatusDraft:
		return true
	default:
		return false
	}
}

// String returns the string representation of the product status
func (s ProductStatus) String() string {
	return string(s)
}

// Product is a shop product mirrored from the remote platform. Price and
// stock come from the first variant, the image from the first image.
type Product struct {
	shared.TenantEntity
	ExternalID        string
	Title             string
	BodyHTML          string
	Vendor            string
	ProductType       string
	Handle            string
	Tags              string
	Status            ProductStatus
	VariantExternalID string
	Price             decimal.Decimal
	CompareAtPrice    decimal.Decimal
	SKU               string
	InventoryQuantity int
	Weight            decimal.Decimal
	WeightUnit        string
	ImageURL          string
	RemoteCreatedAt   *time.Time
	RemoteUpdatedAt   *time.Time
}

// NewProduct creates a product shell for a tenant and remote ID
func NewProduct(tenantID uuid.UUID, externalID string) (*Product, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID is required")
	}

	return &Product{
		TenantEntity:   shared.NewTenantEntity(tenantID),
		ExternalID:     externalID,
		Status:         ProductStatusActive,
		Price:          decimal.Zero,
		CompareAtPrice: decimal.Zero,
		Weight:         decimal.Zero,
	}, nil
}
