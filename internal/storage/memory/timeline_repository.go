package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// TimelineRepository держит историю заказов в памяти процесса.
type TimelineRepository struct {
	mu      sync.Mutex
	byOrder map[string][]domain.TimelineEvent
}

func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{byOrder: make(map[string][]domain.TimelineEvent)}
}

func (r *TimelineRepository) Append(_ context.Context, event domain.TimelineEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := append(r.byOrder[event.OrderID], event)
	domain.SortTimeline(history)
	r.byOrder[event.OrderID] = history
	return nil
}

// List отдаёт копию истории: вызывающий может менять срез.
func (r *TimelineRepository) List(_ context.Context, orderID string) ([]domain.TimelineEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := slices.Clone(r.byOrder[orderID])
	if history == nil {
		history = []domain.TimelineEvent{}
	}
	return history, nil
}

var _ domain.TimelineRepository = (*TimelineRepository)(nil)
