package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopsync/backend/internal/domain/identity"
	"github.com/shopsync/backend/internal/infrastructure/config"
)

// SyncRunner runs a full catalog sync for a single tenant
type SyncRunner interface {
	RunSync(ctx context.Context, tenantID uuid.UUID) error
}

// Config holds sync scheduler configuration
type Config struct {
	Enabled bool
	// SyncInterval is how stale a tenant's last sync may get before it
	// becomes due again
	SyncInterval time.Duration
	// CheckInterval is how often the scheduler scans for due tenants
	CheckInterval time.Duration
	// SyncLease is the maximum time a sync may stay IN_PROGRESS before it
	// is considered abandoned and reset
	SyncLease time.Duration
	// MaxConcurrentSyncs is the worker pool size
	MaxConcurrentSyncs int
	// SyncTimeout is the maximum time a single tenant sync may run
	SyncTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:            true,
		SyncInterval:       15 * time.Minute,
		CheckInterval:      time.Minute,
		SyncLease:          time.Hour,
		MaxConcurrentSyncs: 3,
		SyncTimeout:        30 * time.Minute,
	}
}

// FromAppConfig builds a scheduler Config from the application config
func FromAppConfig(cfg config.SchedulerConfig) Config {
	c := DefaultConfig()
	c.Enabled = cfg.Enabled
	if cfg.SyncInterval > 0 {
		c.SyncInterval = cfg.SyncInterval
	}
	if cfg.CheckInterval > 0 {
		c.CheckInterval = cfg.CheckInterval
	}
	if cfg.SyncLease > 0 {
		c.SyncLease = cfg.SyncLease
	}
	return c
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SyncInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.CheckInterval <= 0 {
		return ErrInvalidConfig
	}
	if c.SyncLease <= 0 {
		return ErrInvalidConfig
	}
	if c.MaxConcurrentSyncs <= 0 {
		return ErrInvalidConfig
	}
	if c.SyncTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// SyncScheduler periodically finds tenants whose catalog data is stale and
// runs a sync for each through a bounded worker pool. It also resets syncs
// that have held the IN_PROGRESS state past the lease, so a crashed run
// does not block the tenant forever.
type SyncScheduler struct {
	config  Config
	tenants identity.TenantRepository
	runner  SyncRunner
	logger  *zap.Logger

	jobs      chan uuid.UUID
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// queued tracks tenant IDs currently waiting or running, so one tenant
	// is never enqueued twice
	queuedMu sync.Mutex
	queued   map[uuid.UUID]struct{}
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(cfg Config, tenants identity.TenantRepository, runner SyncRunner, logger *zap.Logger) (*SyncScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &SyncScheduler{
		config:  cfg,
		tenants: tenants,
		runner:  runner,
		logger:  logger,
		jobs:    make(chan uuid.UUID, 100),
		queued:  make(map[uuid.UUID]struct{}),
	}, nil
}

// Start starts the scheduler loop and worker pool
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.MaxConcurrentSyncs; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	// Workers always run so manually triggered syncs are served; the
	// periodic scan only runs when enabled
	if s.config.Enabled {
		s.wg.Add(1)
		go s.scanLoop(ctx)
	}

	s.logger.Info("Sync scheduler started",
		zap.Int("workers", s.config.MaxConcurrentSyncs),
		zap.Duration("sync_interval", s.config.SyncInterval),
		zap.Duration("check_interval", s.config.CheckInterval),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out")
		return ctx.Err()
	}
}

// Submit enqueues a tenant for sync. Returns ErrJobQueueFull when the
// queue has no room and nil (no-op) when the tenant is already queued.
func (s *SyncScheduler) Submit(tenantID uuid.UUID) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	s.queuedMu.Lock()
	if _, exists := s.queued[tenantID]; exists {
		s.queuedMu.Unlock()
		return nil
	}
	s.queued[tenantID] = struct{}{}
	s.queuedMu.Unlock()

	select {
	case s.jobs <- tenantID:
		s.logger.Debug("Tenant sync enqueued", zap.String("tenant_id", tenantID.String()))
		return nil
	default:
		s.dequeue(tenantID)
		return ErrJobQueueFull
	}
}

func (s *SyncScheduler) dequeue(tenantID uuid.UUID) {
	s.queuedMu.Lock()
	delete(s.queued, tenantID)
	s.queuedMu.Unlock()
}

// scanLoop periodically enqueues due tenants and expires stuck syncs
func (s *SyncScheduler) scanLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.expireStuckSyncs(ctx)
			s.enqueueDueTenants(ctx)
		}
	}
}

func (s *SyncScheduler) enqueueDueTenants(ctx context.Context) {
	olderThan := time.Now().Add(-s.config.SyncInterval)

	due, err := s.tenants.FindDueForSync(ctx, olderThan)
	if err != nil {
		s.logger.Error("Failed to find tenants due for sync", zap.Error(err))
		return
	}

	for i := range due {
		if err := s.Submit(due[i].ID); err != nil {
			s.logger.Warn("Failed to enqueue tenant sync",
				zap.String("tenant_id", due[i].ID.String()),
				zap.Error(err),
			)
		}
	}
}

func (s *SyncScheduler) expireStuckSyncs(ctx context.Context) {
	deadline := time.Now().Add(-s.config.SyncLease)

	stuck, err := s.tenants.FindStuckInProgress(ctx, deadline)
	if err != nil {
		s.logger.Error("Failed to find stuck syncs", zap.Error(err))
		return
	}

	for i := range stuck {
		tenant := &stuck[i]
		if !tenant.ExpireSyncLease(s.config.SyncLease) {
			continue
		}
		if err := s.tenants.Save(ctx, tenant); err != nil {
			s.logger.Error("Failed to reset stuck sync",
				zap.String("tenant_id", tenant.ID.String()),
				zap.Error(err),
			)
			continue
		}
		s.logger.Warn("Reset sync that exceeded its lease",
			zap.String("tenant_id", tenant.ID.String()),
			zap.Duration("lease", s.config.SyncLease),
		)
	}
}

// worker runs syncs from the queue
func (s *SyncScheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case tenantID, ok := <-s.jobs:
			if !ok {
				return
			}
			s.runOne(ctx, tenantID, workerID)
		}
	}
}

func (s *SyncScheduler) runOne(ctx context.Context, tenantID uuid.UUID, workerID int) {
	defer s.dequeue(tenantID)

	s.logger.Info("Starting scheduled sync",
		zap.Int("worker_id", workerID),
		zap.String("tenant_id", tenantID.String()),
	)

	syncCtx, cancel := context.WithTimeout(ctx, s.config.SyncTimeout)
	defer cancel()

	start := time.Now()
	if err := s.runner.RunSync(syncCtx, tenantID); err != nil {
		s.logger.Error("Scheduled sync failed",
			zap.Int("worker_id", workerID),
			zap.String("tenant_id", tenantID.String()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Scheduled sync completed",
		zap.Int("worker_id", workerID),
		zap.String("tenant_id", tenantID.String()),
		zap.Duration("elapsed", time.Since(start)),
	)
}
