package shop

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/shared"
)

// FinancialStatus represents the payment state of an order
type FinancialStatus string

const (
	FinancialStatusPending           FinancialStatus = "PENDING"
	FinancialStatusAuthorized        FinancialStatus = "AUTHORIZED"
	FinancialStatusPartiallyPaid     FinancialStatus = "PARTIALLY_PAID"
	FinancialStatusPaid              FinancialStatus = "PAID"
	FinancialStatusPartiallyRefunded FinancialStatus = "PARTIALLY_REFUNDED"
	FinancialStatusRefunded          FinancialStatus = "REFUNDED"
	FinancialStatusVoided            FinancialStatus = "VOIDED"
)

// IsValid checks if the financial status is a known value
func (s FinancialStatus) IsValid() bool {
	switch s {
	case FinancialStatusPending, FinancialStatusAuthorized, FinancialStatusPartiallyPaid,
		FinancialStatusPaid, FinancialStatusPartiallyRefunded, FinancialStatusRefunded,
		FinancialStatusVoided:
		return true
	default:
		return false
	}
}

// String returns the string representation of the financial status
func (s FinancialStatus) String() string {
	return string(s)
}

// FulfillmentStatus represents the shipping state of an order. Orders with
// no fulfillment attempt carry no status at all.
type FulfillmentStatus string

const (
	FulfillmentStatusFulfilled   FulfillmentStatus = "FULFILLED"
	FulfillmentStatusPartial     FulfillmentStatus = "PARTIAL"
	FulfillmentStatusUnfulfilled FulfillmentStatus = "UNFULFILLED"
	FulfillmentStatusRestocked   FulfillmentStatus = "RESTOCKED"
)

// IsValid checks if the fulfillment status is a known value
func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case FulfillmentStatusFulfilled, FulfillmentStatusPartial,
		FulfillmentStatusUnfulfilled, FulfillmentStatusRestocked:
		return true
	default:
		return false
	}
}

// String returns the string representation of the fulfillment status
func (s FulfillmentStatus) String() string {
	return string(s)
}

// Order is a shop order mirrored from the remote platform, including its
// line items. ItemCount is the sum of line item quantities and is recomputed
// whenever the items are replaced.
type Order struct {
	shared.TenantEntity
	ExternalID         string
	OrderNumber        string
	CustomerID         *uuid.UUID
	CustomerExternalID string
	Email              string
	TotalPrice         decimal.Decimal
	SubtotalPrice      decimal.Decimal
	TotalTax           decimal.Decimal
	TotalDiscounts     decimal.Decimal
	Currency           string
	FinancialStatus    FinancialStatus
	FulfillmentStatus  *FulfillmentStatus
	Note               string
	Tags               string
	SourceName         string
	Confirmed          bool
	CancelledAt        *time.Time
	CancelReason       string
	ProcessedAt        *time.Time
	ItemCount          int
	Items              []OrderItem
}

// OrderItem is one line of an order. ProductID is a best-effort link to a
// synced product and stays nil when the product is unknown.
type OrderItem struct {
	shared.BaseEntity
	OrderID           uuid.UUID
	ExternalID        string
	ProductID         *uuid.UUID
	ProductExternalID string
	VariantExternalID string
	Title             string
	VariantTitle      string
	SKU               string
	Quantity          int
	Price             decimal.Decimal
	TotalDiscount     decimal.Decimal
}

// LineTotal returns price times quantity minus the per-item discount,
// never below zero
func (i *OrderItem) LineTotal() decimal.Decimal {
	total := i.Price.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.TotalDiscount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// NewOrder creates an order shell for a tenant and remote ID
func NewOrder(tenantID uuid.UUID, externalID string) (*Order, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID is required")
	}

	return &Order{
		TenantEntity:    shared.NewTenantEntity(tenantID),
		ExternalID:      externalID,
		TotalPrice:      decimal.Zero,
		SubtotalPrice:   decimal.Zero,
		TotalTax:        decimal.Zero,
		TotalDiscounts:  decimal.Zero,
		FinancialStatus: FinancialStatusPending,
	}, nil
}

// ReplaceItems swaps the full line item set and recomputes ItemCount.
// Items are re-parented to this order.
func (o *Order) ReplaceItems(items []OrderItem) {
	count := 0
	for i := range items {
		items[i].OrderID = o.ID
		count += items[i].Quantity
	}
	o.Items = items
	o.ItemCount = count
	o.Touch()
}

// LinkCustomer attaches a synced customer to the order
func (o *Order) LinkCustomer(customerID uuid.UUID) {
	o.CustomerID = &customerID
}
