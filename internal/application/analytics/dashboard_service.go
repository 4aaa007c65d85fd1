package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/analytics"
)

const defaultRangeDays = 30

var hundred = decimal.NewFromInt(100)

// DashboardService composes the aggregation queries into dashboard
// responses and applies the period-over-period comparison rules.
type DashboardService struct {
	repo   analytics.Repository
	logger *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo analytics.Repository, logger *zap.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// Dashboard bundles every dashboard section for one response
type Dashboard struct {
	Overview        *analytics.Overview         `json:"overview"`
	OrdersByDate    []analytics.DailyOrders     `json:"orders_by_date"`
	TopCustomers    []analytics.CustomerRanking `json:"top_customers"`
	MonthlyRevenue  []analytics.MonthlyRevenue  `json:"monthly_revenue"`
	TopProducts     []analytics.ProductRanking  `json:"top_products"`
	StatusBreakdown []analytics.StatusSlice     `json:"status_breakdown"`
}

// GetOverview returns the all-time headline totals together with change
// percentages comparing the month to date against the previous calendar
// month
func (s *DashboardService) GetOverview(ctx context.Context, rng analytics.Range) (*analytics.Overview, error) {
	lifetime, err := s.repo.GetLifetimeTotals(ctx, rng.TenantID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	current, err := s.repo.GetTotals(ctx, analytics.Range{
		TenantID: rng.TenantID,
		From:     monthStart,
		To:       now,
	})
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.GetTotals(ctx, analytics.Range{
		TenantID: rng.TenantID,
		From:     monthStart.AddDate(0, -1, 0),
		To:       monthStart,
	})
	if err != nil {
		return nil, err
	}

	avgOrderValue := decimal.Zero
	if lifetime.Orders > 0 {
		avgOrderValue = lifetime.Revenue.DivRound(decimal.NewFromInt(lifetime.Orders), 2)
	}

	return &analytics.Overview{
		TotalCustomers:  lifetime.Customers,
		TotalProducts:   lifetime.Products,
		TotalOrders:     lifetime.Orders,
		TotalRevenue:    lifetime.Revenue,
		AvgOrderValue:   avgOrderValue,
		CustomersChange: PercentChange(decimal.NewFromInt(previous.Customers), decimal.NewFromInt(current.Customers)),
		OrdersChange:    PercentChange(decimal.NewFromInt(previous.Orders), decimal.NewFromInt(current.Orders)),
		RevenueChange:   PercentChange(previous.Revenue, current.Revenue),
	}, nil
}

// GetOrdersByDate returns per-day order volume for the window
func (s *DashboardService) GetOrdersByDate(ctx context.Context, rng analytics.Range) ([]analytics.DailyOrders, error) {
	return s.repo.GetOrdersByDate(ctx, normalizeRange(rng))
}

// GetTopCustomers returns the top customers by lifetime spend
func (s *DashboardService) GetTopCustomers(ctx context.Context, rng analytics.Range) ([]analytics.CustomerRanking, error) {
	return s.repo.GetTopCustomers(ctx, normalizeRange(rng))
}

// GetMonthlyRevenue returns per-month revenue for the window
func (s *DashboardService) GetMonthlyRevenue(ctx context.Context, rng analytics.Range) ([]analytics.MonthlyRevenue, error) {
	return s.repo.GetMonthlyRevenue(ctx, normalizeRange(rng))
}

// GetTopProducts returns the top products by line item revenue
func (s *DashboardService) GetTopProducts(ctx context.Context, rng analytics.Range) ([]analytics.ProductRanking, error) {
	return s.repo.GetTopProducts(ctx, normalizeRange(rng))
}

// GetStatusBreakdown returns the financial status distribution of orders
func (s *DashboardService) GetStatusBreakdown(ctx context.Context, rng analytics.Range) ([]analytics.StatusSlice, error) {
	return s.repo.GetStatusBreakdown(ctx, normalizeRange(rng))
}

// GetDashboard assembles every section in one call
func (s *DashboardService) GetDashboard(ctx context.Context, rng analytics.Range) (*Dashboard, error) {
	rng = normalizeRange(rng)

	overview, err := s.GetOverview(ctx, rng)
	if err != nil {
		return nil, err
	}
	ordersByDate, err := s.repo.GetOrdersByDate(ctx, rng)
	if err != nil {
		return nil, err
	}
	topCustomers, err := s.repo.GetTopCustomers(ctx, rng)
	if err != nil {
		return nil, err
	}
	monthlyRevenue, err := s.repo.GetMonthlyRevenue(ctx, rng)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.repo.GetTopProducts(ctx, rng)
	if err != nil {
		return nil, err
	}
	statusBreakdown, err := s.repo.GetStatusBreakdown(ctx, rng)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Overview:        overview,
		OrdersByDate:    ordersByDate,
		TopCustomers:    topCustomers,
		MonthlyRevenue:  monthlyRevenue,
		TopProducts:     topProducts,
		StatusBreakdown: statusBreakdown,
	}, nil
}

// PercentChange computes the period-over-period change percentage with
// fixed conventions: 0 when both periods are zero, 100 when growth starts
// from zero, otherwise (curr-prev)/prev*100 rounded half up to 2 places.
func PercentChange(previous, current decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// normalizeRange fills an empty window with the trailing 30 days and
// swaps inverted bounds
func normalizeRange(rng analytics.Range) analytics.Range {
	now := time.Now().UTC()
	if rng.To.IsZero() {
		rng.To = now
	}
	if rng.From.IsZero() {
		rng.From = rng.To.AddDate(0, 0, -defaultRangeDays)
	}
	if rng.From.After(rng.To) {
		rng.From, rng.To = rng.To, rng.From
	}
	return rng
}
