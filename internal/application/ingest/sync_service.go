package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/domain/integration"
)

// SyncResult reports one completed sync run with per-kind counts
type SyncResult struct {
	Customers   int       `json:"customers"`
	Products    int       `json:"products"`
	Orders      int       `json:"orders"`
	Message     string    `json:"message"`
	CompletedAt time.Time `json:"completed_at"`
}

// SyncService runs full catalog syncs for tenants. A run walks the kinds
// in ingestion order and pages through each listing until the cursor is
// exhausted. Failure stops the run but keeps everything ingested so far.
type SyncService struct {
	tenants    identity.TenantRepository
	client     integration.CatalogClient
	reconciler *Reconciler
	logger     *zap.Logger
	pageSize   int
}

// NewSyncService creates a new sync service
func NewSyncService(
	tenants identity.TenantRepository,
	client integration.CatalogClient,
	reconciler *Reconciler,
	pageSize int,
	logger *zap.Logger,
) *SyncService {
	if pageSize < 1 || pageSize > integration.MaxPageSize {
		pageSize = integration.MaxPageSize
	}
	return &SyncService{
		tenants:    tenants,
		client:     client,
		reconciler: reconciler,
		logger:     logger,
		pageSize:   pageSize,
	}
}

// SyncAll executes a full sync for the tenant and reports what it
// ingested. Returns an error when the tenant cannot sync or a stage
// fails; the tenant's sync state records the outcome either way.
func (s *SyncService) SyncAll(ctx context.Context, tenantID uuid.UUID) (*SyncResult, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if err := tenant.BeginSync(); err != nil {
		return nil, err
	}
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Sync started",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("shop_domain", tenant.ShopDomain),
	)

	creds := tenant.Credentials()
	var counts integration.SyncCounts

	for _, kind := range integration.SyncOrder {
		n, err := s.syncKind(ctx, tenant.ID, creds, kind)
		counts.Add(kind, n)
		if err != nil {
			tenant.FailSync(kind, err)
			if saveErr := s.tenants.Save(ctx, tenant); saveErr != nil {
				s.logger.Error("Failed to record sync failure",
					zap.String("tenant_id", tenant.ID.String()),
					zap.Error(saveErr),
				)
			}
			s.logger.Error("Sync failed",
				zap.String("tenant_id", tenant.ID.String()),
				zap.String("stage", kind.String()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("sync %s: %w", kind, err)
		}
	}

	tenant.CompleteSync(counts)
	if err := s.tenants.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("Sync completed",
		zap.String("tenant_id", tenant.ID.String()),
		zap.Int("customers", counts.Customers),
		zap.Int("products", counts.Products),
		zap.Int("orders", counts.Orders),
	)

	return &SyncResult{
		Customers:   counts.Customers,
		Products:    counts.Products,
		Orders:      counts.Orders,
		Message:     tenant.SyncMessage,
		CompletedAt: *tenant.LastSyncAt,
	}, nil
}

// RunSync executes a full sync, discarding the per-kind counts. This is
// the shape the background scheduler drives.
func (s *SyncService) RunSync(ctx context.Context, tenantID uuid.UUID) error {
	_, err := s.SyncAll(ctx, tenantID)
	return err
}

// syncKind pages through one listing, upserting every record. Returns the
// number of records ingested before any error.
func (s *SyncService) syncKind(ctx context.Context, tenantID uuid.UUID, creds integration.Credentials, kind integration.EntityKind) (int, error) {
	ingested := 0
	cursor := ""

	for {
		page, err := s.client.FetchPage(ctx, creds, kind, cursor, s.pageSize)
		if err != nil {
			return ingested, err
		}

		for _, raw := range page.Records {
			if err := s.reconciler.UpsertRaw(ctx, tenantID, kind, raw); err != nil {
				return ingested, err
			}
			ingested++
		}

		if page.NextCursor == "" {
			return ingested, nil
		}
		cursor = page.NextCursor
	}
}
