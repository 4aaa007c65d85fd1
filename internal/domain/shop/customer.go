package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/shared"
)

// Customer is a shop customer mirrored from the remote platform.
// Identity within a tenant is the remote platform ID, not the email.
type Customer struct {
	shared.TenantEntity
	ExternalID       string
	Email            string
	FirstName        string
	LastName         string
	Phone            string
	TotalSpent       decimal.Decimal
	OrdersCount      int
	AcceptsMarketing bool
	Tags             string
	Note             string
	Address1         string
	City             string
	Province         string
	Country          string
	Zip              string
	RemoteCreatedAt  *time.Time
	RemoteUpdatedAt  *time.Time
}

// NewCustomer creates a customer shell for a tenant and remote ID
func NewCustomer(tenantID uuid.UUID, externalID string) (*Customer, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID is required")
	}

	return &Customer{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ExternalID:   externalID,
		TotalSpent:   decimal.Zero,
	}, nil
}

// FullName joins first and last name, skipping empty parts
func (c *Customer) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}
