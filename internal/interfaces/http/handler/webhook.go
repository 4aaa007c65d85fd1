package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/application/ingest"
)

// WebhookHandler receives platform webhook deliveries.
// Deliveries are always acknowledged with 200 so the platform does not
// disable the subscription; failures are logged and visible in the
// event feed instead.
type WebhookHandler struct {
	webhookService *ingest.WebhookService
	logger         *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *ingest.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		logger:         logger,
	}
}

// Receive processes one webhook delivery
// POST /api/v1/webhooks/shopify
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("Failed to read webhook body", zap.Error(err))
		c.String(http.StatusOK, "OK")
		return
	}

	delivery := ingest.Delivery{
		ShopDomain: c.GetHeader("X-Shopify-Shop-Domain"),
		Topic:      c.GetHeader("X-Shopify-Topic"),
		DeliveryID: c.GetHeader("X-Shopify-Webhook-Id"),
		Signature:  c.GetHeader("X-Shopify-Hmac-Sha256"),
		Body:       body,
	}

	outcome := h.webhookService.Process(c.Request.Context(), delivery)
	if outcome != ingest.OutcomeProcessed {
		h.logger.Debug("Webhook not applied",
			zap.String("shop_domain", delivery.ShopDomain),
			zap.String("topic", delivery.Topic),
			zap.String("outcome", string(outcome)),
		)
	}

	c.String(http.StatusOK, "OK")
}
