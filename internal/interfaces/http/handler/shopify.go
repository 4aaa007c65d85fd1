package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopsync/backend/internal/application/ingest"
	integrationapp "github.com/shopsync/backend/internal/application/integration"
)

// SyncRunner runs a full catalog sync for a tenant and reports what it
// ingested
type SyncRunner interface {
	SyncAll(ctx context.Context, tenantID uuid.UUID) (*ingest.SyncResult, error)
}

// ShopifyHandler handles shop connection and sync endpoints
type ShopifyHandler struct {
	BaseHandler
	connectService *integrationapp.ConnectService
	syncRunner     SyncRunner
}

// NewShopifyHandler creates a new ShopifyHandler
func NewShopifyHandler(connectService *integrationapp.ConnectService, syncRunner SyncRunner) *ShopifyHandler {
	return &ShopifyHandler{
		connectService: connectService,
		syncRunner:     syncRunner,
	}
}

// Connect verifies shop credentials and links the shop to the tenant
// POST /api/v1/shopify/connect
func (h *ShopifyHandler) Connect(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req integrationapp.ConnectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	info, err := h.connectService.Connect(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Disconnect drops the shop credentials. Mirrored data is kept.
// POST /api/v1/shopify/disconnect
func (h *ShopifyHandler) Disconnect(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.connectService.Disconnect(c.Request.Context(), tenantID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Status reports the connection and sync state with record counts
// GET /api/v1/shopify/status
func (h *ShopifyHandler) Status(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	status, err := h.connectService.GetStatus(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// TriggerSync runs a full sync for the tenant and reports the per-kind
// counts once it finishes
// POST /api/v1/shopify/sync
func (h *ShopifyHandler) TriggerSync(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.syncRunner.SyncAll(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
