package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

func TestOutboxRepository_PostgresDeliveryCycle(t *testing.T) {
	repo := NewOutboxRepository(newTestStore(t))
	ctx := context.Background()
	placedAt := time.Now().UTC().Add(-time.Minute).Truncate(time.Microsecond)

	created, err := repo.Enqueue(ctx, domain.OutboxMessage{
		AggregateType: domain.AggregateTypeOrder,
		AggregateID:   "order-1",
		EventType:     domain.EventTypeOrderCreated,
		Payload:       []byte(`{"order_id":"order-1"}`),
		CreatedAt:     placedAt,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	changed, err := repo.Enqueue(ctx, domain.OutboxMessage{
		ID:            "evt-status-1",
		AggregateType: domain.AggregateTypeOrder,
		AggregateID:   "order-1",
		EventType:     domain.EventTypeOrderStatusChanged,
		Payload:       []byte(`{"order_id":"order-1","status":"shipped"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-status-1", changed.ID)

	_, err = repo.Enqueue(ctx, changed)
	assert.Error(t, err, "event id is unique")

	pending, err := repo.PullPending(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, created.ID, pending[0].ID, "oldest event goes first")
	assert.JSONEq(t, `{"order_id":"order-1"}`, string(pending[0].Payload))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.PendingCount)
	assert.True(t, stats.OldestPendingAt.Equal(placedAt))

	require.NoError(t, repo.MarkSent(ctx, created.ID))
	require.NoError(t, repo.MarkFailed(ctx, changed.ID))

	pending, err = repo.PullPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OutboxStats{FailedCount: 1}, stats)
}

func TestOutboxRepository_PostgresUnknownMessage(t *testing.T) {
	repo := NewOutboxRepository(newTestStore(t))
	ctx := context.Background()

	assert.ErrorIs(t, repo.MarkSent(ctx, "missing"), domain.ErrOutboxPublish)
	assert.ErrorIs(t, repo.MarkFailed(ctx, "missing"), domain.ErrOutboxPublish)
}
