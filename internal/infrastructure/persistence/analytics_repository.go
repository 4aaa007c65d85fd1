package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsync/backend/internal/domain/analytics"
	"gorm.io/gorm"
)

// GormAnalyticsRepository implements analytics.Repository using GORM.
// Queries stick to SQL that both postgres and sqlite understand, which
// keeps the in-memory test setup honest about what production runs.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewGormAnalyticsRepository creates a new GormAnalyticsRepository
func NewGormAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// GetLifetimeTotals returns all-time customer/product/order/revenue
// totals for the tenant
func (r *GormAnalyticsRepository) GetLifetimeTotals(ctx context.Context, tenantID uuid.UUID) (*analytics.Totals, error) {
	return r.totals(ctx, tenantID, nil)
}

// GetTotals returns customer/product/order/revenue totals for the window
func (r *GormAnalyticsRepository) GetTotals(ctx context.Context, rng analytics.Range) (*analytics.Totals, error) {
	return r.totals(ctx, rng.TenantID, &rng)
}

// totals runs the aggregate counts, restricted to the window when one is
// given
func (r *GormAnalyticsRepository) totals(ctx context.Context, tenantID uuid.UUID, window *analytics.Range) (*analytics.Totals, error) {
	scoped := func(table string) *gorm.DB {
		q := r.db.WithContext(ctx).Table(table).Where("tenant_id = ?", tenantID)
		if window != nil {
			q = q.Where("created_at >= ? AND created_at < ?", window.From, window.To)
		}
		return q
	}

	var customers, products int64
	if err := scoped("customers").Count(&customers).Error; err != nil {
		return nil, err
	}
	if err := scoped("products").Count(&products).Error; err != nil {
		return nil, err
	}

	type orderResult struct {
		Orders  int64
		Revenue decimal.Decimal
	}
	var res orderResult
	if err := scoped("orders").
		Select("COUNT(*) AS orders, COALESCE(SUM(total_price), 0) AS revenue").
		Scan(&res).Error; err != nil {
		return nil, err
	}

	return &analytics.Totals{
		Customers: customers,
		Products:  products,
		Orders:    res.Orders,
		Revenue:   res.Revenue,
	}, nil
}

// GetOrdersByDate returns per-day order counts and revenue, ascending by date
func (r *GormAnalyticsRepository) GetOrdersByDate(ctx context.Context, rng analytics.Range) ([]analytics.DailyOrders, error) {
	type dailyResult struct {
		Day        string
		OrderCount int64
		Revenue    decimal.Decimal
	}

	var results []dailyResult
	err := r.db.WithContext(ctx).Table("orders").
		Select(`
			DATE(created_at) AS day,
			COUNT(*) AS order_count,
			COALESCE(SUM(total_price), 0) AS revenue
		`).
		Where("tenant_id = ?", rng.TenantID).
		Where("created_at >= ? AND created_at < ?", rng.From, rng.To).
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	days := make([]analytics.DailyOrders, 0, len(results))
	for _, res := range results {
		day, err := parseDay(res.Day)
		if err != nil {
			return nil, err
		}
		days = append(days, analytics.DailyOrders{
			Date:       day,
			OrderCount: res.OrderCount,
			Revenue:    res.Revenue,
		})
	}
	return days, nil
}

// GetTopCustomers returns the top N customers by lifetime spend. Equal spend
// is broken by customer ID ascending so pagination stays stable.
func (r *GormAnalyticsRepository) GetTopCustomers(ctx context.Context, rng analytics.Range) ([]analytics.CustomerRanking, error) {
	type customerResult struct {
		CustomerID string
		FirstName  string
		LastName   string
		Email      string
		TotalSpent decimal.Decimal
		OrderCount int64
	}

	var results []customerResult
	err := r.db.WithContext(ctx).Table("customers").
		Select(`
			id AS customer_id,
			first_name,
			last_name,
			email,
			total_spent,
			orders_count AS order_count
		`).
		Where("tenant_id = ?", rng.TenantID).
		Order("total_spent DESC, id ASC").
		Limit(topN(rng)).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rankings := make([]analytics.CustomerRanking, len(results))
	for i, res := range results {
		id, err := uuid.Parse(res.CustomerID)
		if err != nil {
			return nil, err
		}
		name := res.FirstName
		if res.LastName != "" {
			if name != "" {
				name += " "
			}
			name += res.LastName
		}
		if name == "" {
			name = res.Email
		}
		rankings[i] = analytics.CustomerRanking{
			Rank:       i + 1,
			CustomerID: id,
			Name:       name,
			Email:      res.Email,
			TotalSpent: res.TotalSpent,
			OrderCount: res.OrderCount,
		}
	}
	return rankings, nil
}

// GetMonthlyRevenue returns per-month revenue for the window. One query per
// calendar month keeps the grouping portable across postgres and sqlite.
func (r *GormAnalyticsRepository) GetMonthlyRevenue(ctx context.Context, rng analytics.Range) ([]analytics.MonthlyRevenue, error) {
	type monthResult struct {
		OrderCount int64
		Revenue    decimal.Decimal
	}

	start := time.Date(rng.From.Year(), rng.From.Month(), 1, 0, 0, 0, 0, rng.From.Location())
	var months []analytics.MonthlyRevenue

	for cursor := start; cursor.Before(rng.To); cursor = cursor.AddDate(0, 1, 0) {
		next := cursor.AddDate(0, 1, 0)

		var res monthResult
		if err := r.db.WithContext(ctx).Table("orders").
			Select("COUNT(*) AS order_count, COALESCE(SUM(total_price), 0) AS revenue").
			Where("tenant_id = ?", rng.TenantID).
			Where("created_at >= ? AND created_at < ?", cursor, next).
			Scan(&res).Error; err != nil {
			return nil, err
		}

		months = append(months, analytics.MonthlyRevenue{
			Month:      cursor.Format("2006-01"),
			Revenue:    res.Revenue,
			OrderCount: res.OrderCount,
		})
	}
	return months, nil
}

// GetTopProducts returns the top N products by line item revenue. The
// ranking runs over the full item set before the limit is applied.
func (r *GormAnalyticsRepository) GetTopProducts(ctx context.Context, rng analytics.Range) ([]analytics.ProductRanking, error) {
	type productResult struct {
		Title         string
		TotalQuantity int64
		TotalRevenue  decimal.Decimal
	}

	var results []productResult
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select(`
			oi.title AS title,
			COALESCE(SUM(oi.quantity), 0) AS total_quantity,
			COALESCE(SUM(oi.price * oi.quantity), 0) AS total_revenue
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.tenant_id = ?", rng.TenantID).
		Where("o.created_at >= ? AND o.created_at < ?", rng.From, rng.To).
		Group("oi.title").
		Order("total_revenue DESC, title ASC").
		Limit(topN(rng)).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rankings := make([]analytics.ProductRanking, len(results))
	for i, res := range results {
		rankings[i] = analytics.ProductRanking{
			Rank:          i + 1,
			Title:         res.Title,
			TotalQuantity: res.TotalQuantity,
			TotalRevenue:  res.TotalRevenue,
		}
	}
	return rankings, nil
}

// GetStatusBreakdown returns order counts per financial status with their
// share of the total, percentages rounded to 2 decimal places
func (r *GormAnalyticsRepository) GetStatusBreakdown(ctx context.Context, rng analytics.Range) ([]analytics.StatusSlice, error) {
	type statusResult struct {
		Status string
		Count  int64
	}

	var results []statusResult
	err := r.db.WithContext(ctx).Table("orders").
		Select("financial_status AS status, COUNT(*) AS count").
		Where("tenant_id = ?", rng.TenantID).
		Where("created_at >= ? AND created_at < ?", rng.From, rng.To).
		Group("financial_status").
		Order("count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	var total int64
	for _, res := range results {
		total += res.Count
	}

	slices := make([]analytics.StatusSlice, len(results))
	for i, res := range results {
		percentage := decimal.Zero
		if total > 0 {
			percentage = decimal.NewFromInt(res.Count).
				Div(decimal.NewFromInt(total)).
				Mul(decimal.NewFromInt(100)).
				Round(2)
		}
		slices[i] = analytics.StatusSlice{
			Status:     res.Status,
			Count:      res.Count,
			Percentage: percentage,
		}
	}
	return slices, nil
}

func topN(rng analytics.Range) int {
	if rng.TopN < 1 || rng.TopN > 100 {
		return 5
	}
	return rng.TopN
}

func parseDay(value string) (time.Time, error) {
	// postgres and sqlite render DATE() differently
	layouts := []string{"2006-01-02", "2006-01-02T15:04:05Z", time.RFC3339}
	var lastErr error
	for _, layout := range layouts {
		if day, err := time.Parse(layout, value); err == nil {
			return day, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

var _ analytics.Repository = (*GormAnalyticsRepository)(nil)
