package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	shopapp "github.com/shopsync/backend/internal/application/shop"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves read access to the mirrored customers, products,
// orders and the webhook event feed
type CatalogHandler struct {
	BaseHandler
	catalogService *shopapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *shopapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// bindList reads the tenant and the common list parameters
func (h *CatalogHandler) bindList(c *gin.Context) (uuid.UUID, shared.Filter, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, shared.Filter{}, false
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return uuid.Nil, shared.Filter{}, false
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	return tenantID, filter, true
}

// bindID reads the tenant and the ID path parameter
func (h *CatalogHandler) bindID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, id, true
}

// ListCustomers returns one page of customers
// GET /api/v1/customers
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	tenantID, filter, ok := h.bindList(c)
	if !ok {
		return
	}
	page, err := h.catalogService.ListCustomers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetCustomer returns one customer by ID
// GET /api/v1/customers/:id
func (h *CatalogHandler) GetCustomer(c *gin.Context) {
	tenantID, id, ok := h.bindID(c)
	if !ok {
		return
	}
	customer, err := h.catalogService.GetCustomer(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// ListProducts returns one page of products
// GET /api/v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	tenantID, filter, ok := h.bindList(c)
	if !ok {
		return
	}
	page, err := h.catalogService.ListProducts(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetProduct returns one product by ID
// GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	tenantID, id, ok := h.bindID(c)
	if !ok {
		return
	}
	product, err := h.catalogService.GetProduct(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListOrders returns one page of orders with their items
// GET /api/v1/orders
func (h *CatalogHandler) ListOrders(c *gin.Context) {
	tenantID, filter, ok := h.bindList(c)
	if !ok {
		return
	}
	page, err := h.catalogService.ListOrders(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// orderItemDetail pairs a line item with its computed total
type orderItemDetail struct {
	shop.OrderItem
	LineTotal decimal.Decimal
}

// orderDetail augments an order with per-item line totals
type orderDetail struct {
	*shop.Order
	Items []orderItemDetail
}

// GetOrder returns one order with its items by ID
// GET /api/v1/orders/:id
func (h *CatalogHandler) GetOrder(c *gin.Context) {
	tenantID, id, ok := h.bindID(c)
	if !ok {
		return
	}
	order, err := h.catalogService.GetOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	items := make([]orderItemDetail, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItemDetail{OrderItem: item, LineTotal: item.LineTotal()}
	}
	h.Success(c, orderDetail{Order: order, Items: items})
}

// ListEvents returns the latest recorded webhook deliveries
// GET /api/v1/events
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be an integer")
			return
		}
		limit = parsed
	}

	events, err := h.catalogService.ListRecentEvents(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}
