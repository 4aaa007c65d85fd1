package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Totals holds raw aggregates, either all-time or for one window. Read
// model for the dashboard overview, optimized for querying.
type Totals struct {
	Customers int64           `json:"customers"`
	Products  int64           `json:"products"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Overview carries the all-time headline numbers plus change percentages
// comparing the month to date against the previous calendar month
type Overview struct {
	TotalCustomers  int64           `json:"total_customers"`
	TotalProducts   int64           `json:"total_products"`
	TotalOrders     int64           `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	CustomersChange decimal.Decimal `json:"customers_change"` // Percentage
	OrdersChange    decimal.Decimal `json:"orders_change"`    // Percentage
	RevenueChange   decimal.Decimal `json:"revenue_change"`   // Percentage
}

// DailyOrders represents order volume and revenue for one calendar day
type DailyOrders struct {
	Date       time.Time       `json:"date"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// CustomerRanking represents one row of the top customers table
type CustomerRanking struct {
	Rank       int             `json:"rank"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	OrderCount int64           `json:"order_count"`
}

// MonthlyRevenue represents revenue aggregated over one calendar month
type MonthlyRevenue struct {
	Month      string          `json:"month"` // YYYY-MM
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"order_count"`
}

// ProductRanking represents one row of the top products table, ranked by
// revenue contribution across line items
type ProductRanking struct {
	Rank          int             `json:"rank"`
	Title         string          `json:"title"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// StatusSlice represents one financial status share of all orders
type StatusSlice struct {
	Status     string          `json:"status"`
	Count      int64           `json:"count"`
	Percentage decimal.Decimal `json:"percentage"` // 2 decimal places
}

// Range defines the query window for dashboard aggregations
type Range struct {
	TenantID uuid.UUID `json:"-"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	TopN     int       `json:"top_n,omitempty"`
}
