package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsync/backend/internal/domain/shop"
)

func TestPlatformEventRepositorySaveAndFindRecent(t *testing.T) {
	repo := NewGormPlatformEventRepository(newTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	for i := 0; i < 5; i++ {
		event, err := shop.NewPlatformEvent(tenantID, "orders/create", fmt.Sprintf("delivery-%d", i), "9001", "acme.myshopify.com")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, event))
	}

	recent, err := repo.FindRecent(ctx, tenantID, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	// other tenants see nothing
	empty, err := repo.FindRecent(ctx, uuid.New(), 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPlatformEventRepositoryCountByTopic(t *testing.T) {
	repo := NewGormPlatformEventRepository(newTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	topics := []string{"orders/create", "orders/create", "orders/updated", "customers/create"}
	for i, topic := range topics {
		event, err := shop.NewPlatformEvent(tenantID, topic, fmt.Sprintf("delivery-%d", i), "", "acme.myshopify.com")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, event))
	}

	stats, err := repo.CountByTopic(ctx, tenantID)
	require.NoError(t, err)

	counts := make(map[string]int64, len(stats))
	for _, s := range stats {
		counts[s.Topic] = s.Count
	}
	assert.Equal(t, int64(2), counts["orders/create"])
	assert.Equal(t, int64(1), counts["orders/updated"])
	assert.Equal(t, int64(1), counts["customers/create"])
}
