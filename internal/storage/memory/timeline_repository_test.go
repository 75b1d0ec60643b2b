package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/storage/memory"
)

func TestTimelineRepository_ChronologicalCopy(t *testing.T) {
	repo := memory.NewTimelineRepository()
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, repo.Append(ctx, domain.TimelineEvent{OrderID: "o-1", Type: domain.TimelineOrderStatusChanged, Reason: "shipped", Occurred: at.Add(time.Minute)}))
	require.NoError(t, repo.Append(ctx, domain.TimelineEvent{OrderID: "o-1", Type: domain.TimelineOrderPlaced, Occurred: at}))
	require.NoError(t, repo.Append(ctx, domain.TimelineEvent{OrderID: "o-2", Type: domain.TimelineOrderPlaced, Occurred: at}))

	history, err := repo.List(ctx, "o-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.TimelineOrderPlaced, history[0].Type)

	history[0].Reason = "mutated"
	again, err := repo.List(ctx, "o-1")
	require.NoError(t, err)
	assert.Empty(t, again[0].Reason)

	empty, err := repo.List(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
