package ingest

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/domain/shop"
	"github.com/shopsync/backend/internal/infrastructure/config"
)

// Outcome classifies what happened to a webhook delivery. Every outcome is
// acknowledged to the sender; the distinction is for logs and the audit
// trail, never for the HTTP status.
type Outcome string

const (
	OutcomeProcessed        Outcome = "PROCESSED"
	OutcomeDuplicate        Outcome = "DUPLICATE"
	OutcomeUnknownShop      Outcome = "UNKNOWN_SHOP"
	OutcomeInvalidSignature Outcome = "INVALID_SIGNATURE"
	OutcomeIgnoredTopic     Outcome = "IGNORED_TOPIC"
	OutcomeFailed           Outcome = "FAILED"
)

// Delivery is one incoming webhook with its routing headers
type Delivery struct {
	ShopDomain string
	Topic      string
	DeliveryID string
	Signature  string
	Body       []byte
}

// WebhookService verifies, de-duplicates and applies incoming webhooks
type WebhookService struct {
	tenants     identity.TenantRepository
	reconciler  *Reconciler
	events      shop.PlatformEventRepository
	idempotency shared.IdempotencyStore
	cfg         config.WebhookConfig
	logger      *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	tenants identity.TenantRepository,
	reconciler *Reconciler,
	events shop.PlatformEventRepository,
	idempotency shared.IdempotencyStore,
	cfg config.WebhookConfig,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		tenants:     tenants,
		reconciler:  reconciler,
		events:      events,
		idempotency: idempotency,
		cfg:         cfg,
		logger:      logger,
	}
}

// Process handles one webhook delivery. It never asks the caller to retry:
// unknown shops, bad signatures and duplicates are absorbed, and only the
// outcome says what happened.
func (s *WebhookService) Process(ctx context.Context, d Delivery) Outcome {
	shopDomain := identity.NormalizeShopDomain(d.ShopDomain)

	tenant, err := s.tenants.FindByShopDomain(ctx, shopDomain)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Webhook tenant lookup failed",
				zap.String("shop_domain", shopDomain),
				zap.Error(err),
			)
			return OutcomeFailed
		}
		s.logger.Info("Webhook for unknown shop dropped",
			zap.String("shop_domain", shopDomain),
			zap.String("topic", d.Topic),
		)
		return OutcomeUnknownShop
	}

	if !s.verifySignature(tenant, d.Body, d.Signature) {
		s.logger.Warn("Webhook signature rejected",
			zap.String("shop_domain", shopDomain),
			zap.String("topic", d.Topic),
		)
		return OutcomeInvalidSignature
	}

	if d.DeliveryID != "" && s.cfg.DedupEnabled {
		fresh, err := s.idempotency.MarkProcessed(ctx, d.DeliveryID, s.cfg.DedupTTL)
		if err != nil {
			// Dedup store trouble must not drop the event; upserts are
			// idempotent so reprocessing is safe
			s.logger.Warn("Webhook dedup check failed, processing anyway",
				zap.String("delivery_id", d.DeliveryID),
				zap.Error(err),
			)
		} else if !fresh {
			return OutcomeDuplicate
		}
	}

	outcome, externalID := s.apply(ctx, tenant, d)

	if outcome == OutcomeProcessed {
		s.recordEvent(ctx, tenant, d, externalID)
	}
	return outcome
}

// apply routes the delivery by topic and returns the affected external ID
func (s *WebhookService) apply(ctx context.Context, tenant *identity.Tenant, d Delivery) (Outcome, string) {
	kind, ok := topicKind(d.Topic)
	if !ok {
		if d.Topic == "app/uninstalled" {
			tenant.Disconnect()
			if err := s.tenants.Save(ctx, tenant); err != nil {
				s.logger.Error("Failed to disconnect tenant on uninstall",
					zap.String("tenant_id", tenant.ID.String()),
					zap.Error(err),
				)
				return OutcomeFailed, ""
			}
			return OutcomeProcessed, ""
		}
		return OutcomeIgnoredTopic, ""
	}

	if err := s.reconciler.UpsertRaw(ctx, tenant.ID, kind, json.RawMessage(d.Body)); err != nil {
		s.logger.Error("Webhook ingestion failed",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("topic", d.Topic),
			zap.Error(err),
		)
		return OutcomeFailed, ""
	}

	return OutcomeProcessed, payloadExternalID(d.Body)
}

func (s *WebhookService) recordEvent(ctx context.Context, tenant *identity.Tenant, d Delivery, externalID string) {
	event, err := shop.NewPlatformEvent(tenant.ID, d.Topic, d.DeliveryID, externalID, tenant.ShopDomain)
	if err != nil {
		return
	}
	if err := s.events.Save(ctx, event); err != nil {
		s.logger.Warn("Failed to record webhook event",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("topic", d.Topic),
			zap.Error(err),
		)
	}
}

// verifySignature checks the base64 HMAC-SHA256 of the raw body. The
// tenant's own secret wins over the shared one when set. With no secret
// configured anywhere, checks are disabled and every delivery passes;
// production config validation refuses to run that way.
func (s *WebhookService) verifySignature(tenant *identity.Tenant, body []byte, signature string) bool {
	secret := tenant.WebhookSecret
	if secret == "" {
		secret = s.cfg.Secret
	}
	if secret == "" {
		return true
	}
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// topicKind maps a webhook topic like "orders/updated" onto the entity
// kind it carries
func topicKind(topic string) (integration.EntityKind, bool) {
	prefix, _, found := strings.Cut(topic, "/")
	if !found {
		return "", false
	}
	kind := integration.EntityKind(prefix)
	if !kind.IsValid() {
		return "", false
	}
	return kind, true
}

// payloadExternalID pulls the remote ID out of a payload for the audit row
func payloadExternalID(body []byte) string {
	var probe struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.ID == 0 {
		return ""
	}
	return formatExternalID(probe.ID)
}
