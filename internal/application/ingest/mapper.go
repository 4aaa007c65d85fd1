package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
)

// timeLayouts are the timestamp formats the remote API is known to emit
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// MapCustomer converts a raw customer payload into a domain Customer.
// Malformed money and timestamps degrade to zero values rather than fail
// the whole record.
func MapCustomer(tenantID uuid.UUID, raw json.RawMessage) (*shop.Customer, error) {
	var p customerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Customer payload is not valid JSON")
	}
	if p.ID == 0 {
		return nil, shared.NewDomainError("MISSING_EXTERNAL_ID", "Customer payload has no id")
	}

	customer, err := shop.NewCustomer(tenantID, formatExternalID(p.ID))
	if err != nil {
		return nil, err
	}

	customer.Email = p.Email
	customer.FirstName = p.FirstName
	customer.LastName = p.LastName
	customer.Phone = p.Phone
	customer.TotalSpent = parseDecimal(p.TotalSpent)
	customer.OrdersCount = p.OrdersCount
	customer.AcceptsMarketing = p.AcceptsMarketing
	customer.Tags = p.Tags
	customer.Note = p.Note
	customer.RemoteCreatedAt = parseTime(p.CreatedAt)
	customer.RemoteUpdatedAt = parseTime(p.UpdatedAt)

	if p.DefaultAddress != nil {
		customer.Address1 = p.DefaultAddress.Address1
		customer.City = p.DefaultAddress.City
		customer.Province = p.DefaultAddress.Province
		customer.Country = p.DefaultAddress.Country
		customer.Zip = p.DefaultAddress.Zip
	}

	return customer, nil
}

// MapProduct converts a raw product payload into a domain Product. Price,
// stock and weight come from the first variant, the image from the first
// image.
func MapProduct(tenantID uuid.UUID, raw json.RawMessage) (*shop.Product, error) {
	var p productPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Product payload is not valid JSON")
	}
	if p.ID == 0 {
		return nil, shared.NewDomainError("MISSING_EXTERNAL_ID", "Product payload has no id")
	}

	product, err := shop.NewProduct(tenantID, formatExternalID(p.ID))
	if err != nil {
		return nil, err
	}

	product.Title = p.Title
	product.BodyHTML = p.BodyHTML
	product.Vendor = p.Vendor
	product.ProductType = p.ProductType
	product.Handle = p.Handle
	product.Tags = p.Tags
	product.Status = parseProductStatus(p.Status)
	product.RemoteCreatedAt = parseTime(p.CreatedAt)
	product.RemoteUpdatedAt = parseTime(p.UpdatedAt)

	if len(p.Variants) > 0 {
		v := p.Variants[0]
		product.VariantExternalID = formatExternalID(v.ID)
		product.Price = parseDecimal(v.Price)
		if v.CompareAtPrice != nil {
			product.CompareAtPrice = parseDecimal(*v.CompareAtPrice)
		}
		product.SKU = v.SKU
		product.InventoryQuantity = v.InventoryQuantity
		product.Weight = decimal.NewFromFloat(v.Weight)
		product.WeightUnit = v.WeightUnit
	}
	if len(p.Images) > 0 {
		product.ImageURL = p.Images[0].Src
	}

	return product, nil
}

// MapOrder converts a raw order payload into a domain Order with its line
// items attached. The entity creation time is set from the remote order
// date so date aggregations see when the order was placed, not when it
// was mirrored.
func MapOrder(tenantID uuid.UUID, raw json.RawMessage) (*shop.Order, error) {
	var p orderPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, shared.NewDomainError("INVALID_PAYLOAD", "Order payload is not valid JSON")
	}
	if p.ID == 0 {
		return nil, shared.NewDomainError("MISSING_EXTERNAL_ID", "Order payload has no id")
	}

	order, err := shop.NewOrder(tenantID, formatExternalID(p.ID))
	if err != nil {
		return nil, err
	}

	order.OrderNumber = orderNumber(p)
	order.Email = p.Email
	order.TotalPrice = parseDecimal(p.TotalPrice)
	order.SubtotalPrice = parseDecimal(p.SubtotalPrice)
	order.TotalTax = parseDecimal(p.TotalTax)
	order.TotalDiscounts = parseDecimal(p.TotalDiscounts)
	order.Currency = p.Currency
	order.FinancialStatus = parseFinancialStatus(p.FinancialStatus)
	order.FulfillmentStatus = parseFulfillmentStatus(p.FulfillmentStatus)
	order.Note = p.Note
	order.Tags = p.Tags
	order.SourceName = p.SourceName
	order.Confirmed = p.Confirmed
	order.CancelReason = p.CancelReason

	if p.CancelledAt != nil {
		order.CancelledAt = parseTime(*p.CancelledAt)
	}
	if p.ProcessedAt != nil {
		order.ProcessedAt = parseTime(*p.ProcessedAt)
	}
	if placedAt := parseTime(p.CreatedAt); placedAt != nil {
		order.CreatedAt = *placedAt
	}
	if p.Customer != nil && p.Customer.ID != 0 {
		order.CustomerExternalID = formatExternalID(p.Customer.ID)
	}

	items := make([]shop.OrderItem, 0, len(p.LineItems))
	for _, li := range p.LineItems {
		item := shop.OrderItem{
			BaseEntity:    shared.NewBaseEntity(),
			ExternalID:    formatExternalID(li.ID),
			Title:         li.Title,
			VariantTitle:  li.VariantTitle,
			SKU:           li.SKU,
			Quantity:      li.Quantity,
			Price:         parseDecimal(li.Price),
			TotalDiscount: parseDecimal(li.TotalDiscount),
		}
		if li.ProductID != nil && *li.ProductID != 0 {
			item.ProductExternalID = formatExternalID(*li.ProductID)
		}
		if li.VariantID != nil && *li.VariantID != 0 {
			item.VariantExternalID = formatExternalID(*li.VariantID)
		}
		items = append(items, item)
	}
	order.ReplaceItems(items)

	return order, nil
}

func formatExternalID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// orderNumber prefers the display name ("#1001") over the bare number
func orderNumber(p orderPayload) string {
	if p.Name != "" {
		return p.Name
	}
	if p.OrderNumber != 0 {
		return strconv.Itoa(p.OrderNumber)
	}
	return ""
}

// parseDecimal parses a money string, degrading to zero on bad input.
// Negative amounts are clamped to zero as well; money fields never go
// below zero.
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// parseTime parses a remote timestamp, returning nil when unparseable
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseProductStatus(s string) shop.ProductStatus {
	status := shop.ProductStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return shop.ProductStatusActive
	}
	return status
}

func parseFinancialStatus(s string) shop.FinancialStatus {
	status := shop.FinancialStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return shop.FinancialStatusPending
	}
	return status
}

// parseFulfillmentStatus keeps the absent state distinct: nil in means nil
// out, while a non-null unknown value degrades to UNFULFILLED
func parseFulfillmentStatus(s *string) *shop.FulfillmentStatus {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	status := shop.FulfillmentStatus(strings.ToUpper(strings.TrimSpace(*s)))
	if !status.IsValid() {
		status = shop.FulfillmentStatusUnfulfilled
	}
	return &status
}
