package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers processed webhook delivery IDs so redelivered
// events are acknowledged without reprocessing.
type IdempotencyStore interface {
	// MarkProcessed marks a delivery as processed with a TTL.
	// Returns true if the delivery was newly marked, false if it was
	// already processed.
	MarkProcessed(ctx context.Context, deliveryID string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a delivery has already been processed
	IsProcessed(ctx context.Context, deliveryID string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for webhook de-duplication
type IdempotencyConfig struct {
	// TTL is the time-to-live for processed delivery IDs. After this
	// duration the same delivery ID is treated as new again.
	TTL time.Duration

	// Enabled determines whether de-duplication is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
