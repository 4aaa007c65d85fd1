package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	analyticsapp "github.com/shopsync/backend/internal/application/analytics"
	"github.com/shopsync/backend/internal/domain/analytics"
)

// DashboardHandler handles analytics endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *analyticsapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *analyticsapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RangeRequest carries the optional analytics window query parameters.
// Dates are in YYYY-MM-DD form; the window defaults to the last 30 days.
type RangeRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	TopN int    `form:"top_n" binding:"omitempty,min=1,max=100"`
}

// parseRange binds the window query parameters into a tenant-scoped range
func (h *DashboardHandler) parseRange(c *gin.Context) (analytics.Range, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return analytics.Range{}, false
	}

	var req RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return analytics.Range{}, false
	}

	rng := analytics.Range{TenantID: tenantID, TopN: req.TopN}
	if req.From != "" {
		rng.From, _ = time.Parse("2006-01-02", req.From)
	}
	if req.To != "" {
		to, _ := time.Parse("2006-01-02", req.To)
		// Make the end date inclusive
		rng.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	return rng, true
}

// Overview returns the all-time headline totals with month-to-date change
// GET /api/v1/dashboard/overview
func (h *DashboardHandler) Overview(c *gin.Context) {
	rng, ok := h.parseRange(c)
	if !ok {
		return
	}
	overview, err := h.dashboardService.GetOverview(c.Request.Context(), rng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// OrdersByDate returns per-day order counts and revenue
// GET /api/v1/dashboard/orders-by-date
func (h *DashboardHandler) OrdersByDate(c *gin.Context) {
	h.section(c, func(rng analytics.Range) (any, error) {
		return h.dashboardService.GetOrdersByDate(c.Request.Context(), rng)
	})
}

// TopCustomers returns the highest-spending customers
// GET /api/v1/dashboard/top-customers
func (h *DashboardHandler) TopCustomers(c *gin.Context) {
	h.section(c, func(rng analytics.Range) (any, error) {
		return h.dashboardService.GetTopCustomers(c.Request.Context(), rng)
	})
}

// MonthlyRevenue returns per-month revenue
// GET /api/v1/dashboard/monthly-revenue
func (h *DashboardHandler) MonthlyRevenue(c *gin.Context) {
	h.section(c, func(rng analytics.Range) (any, error) {
		return h.dashboardService.GetMonthlyRevenue(c.Request.Context(), rng)
	})
}

// TopProducts returns the top products by line item revenue
// GET /api/v1/dashboard/top-products
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	h.section(c, func(rng analytics.Range) (any, error) {
		return h.dashboardService.GetTopProducts(c.Request.Context(), rng)
	})
}

// StatusBreakdown returns order counts per financial status
// GET /api/v1/dashboard/status-breakdown
func (h *DashboardHandler) StatusBreakdown(c *gin.Context) {
	h.section(c, func(rng analytics.Range) (any, error) {
		return h.dashboardService.GetStatusBreakdown(c.Request.Context(), rng)
	})
}

// Full returns every dashboard section in one response
// GET /api/v1/dashboard
func (h *DashboardHandler) Full(c *gin.Context) {
	h.section(c, func(rng analytics.Range) (any, error) {
		return h.dashboardService.GetDashboard(c.Request.Context(), rng)
	})
}

// section runs one dashboard query with the bound range
func (h *DashboardHandler) section(c *gin.Context, query func(analytics.Range) (any, error)) {
	rng, ok := h.parseRange(c)
	if !ok {
		return
	}
	data, err := query(rng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, data)
}
