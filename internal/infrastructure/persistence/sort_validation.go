package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CustomerSortFields contains allowed sort fields for synced customers
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"external_id":  true,
	"email":        true,
	"first_name":   true,
	"last_name":    true,
	"total_spent":  true,
	"orders_count": true,
}

// ProductSortFields contains allowed sort fields for synced products
var ProductSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"external_id":        true,
	"title":              true,
	"vendor":             true,
	"status":             true,
	"price":              true,
	"sku":                true,
	"inventory_quantity": true,
}

// OrderSortFields contains allowed sort fields for synced orders
var OrderSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"external_id":      true,
	"order_number":     true,
	"total_price":      true,
	"financial_status": true,
	"processed_at":     true,
	"item_count":       true,
}
