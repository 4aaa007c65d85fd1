package analytics

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for dashboard aggregation queries.
// All queries are tenant scoped through the Range.
type Repository interface {
	// GetLifetimeTotals returns all-time customer/product/order/revenue
	// totals for the tenant
	GetLifetimeTotals(ctx context.Context, tenantID uuid.UUID) (*Totals, error)

	// GetTotals returns customer/product/order/revenue totals for the window
	GetTotals(ctx context.Context, r Range) (*Totals, error)

	// GetOrdersByDate returns per-day order counts and revenue,
	// ascending by date
	GetOrdersByDate(ctx context.Context, r Range) ([]DailyOrders, error)

	// GetTopCustomers returns the top N customers by lifetime spend,
	// ties broken by customer ID ascending
	GetTopCustomers(ctx context.Context, r Range) ([]CustomerRanking, error)

	// GetMonthlyRevenue returns per-month revenue for the window,
	// ascending by month
	GetMonthlyRevenue(ctx context.Context, r Range) ([]MonthlyRevenue, error)

	// GetTopProducts returns the top N products by line item revenue,
	// ranked over the full item set before truncation
	GetTopProducts(ctx context.Context, r Range) ([]ProductRanking, error)

	// GetStatusBreakdown returns order counts per financial status
	GetStatusBreakdown(ctx context.Context, r Range) ([]StatusSlice, error)
}
