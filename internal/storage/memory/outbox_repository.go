package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type outboxEntry struct {
	msg       domain.OutboxMessage
	status    domain.OutboxStatus
	attempts  int
	updatedAt time.Time
}

// OutboxRepository — журнал событий заказов в порядке фиксации.
type OutboxRepository struct {
	mu      sync.RWMutex
	log     []*outboxEntry
	byID    map[string]*outboxEntry
	pending int
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{byID: make(map[string]*outboxEntry)}
}

func (r *OutboxRepository) Enqueue(_ context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(msg, time.Now().UTC()), nil
}

// appendCommitted дописывает события, зафиксированные транзакцией checkout.
func (r *OutboxRepository) appendCommitted(msgs []domain.OutboxMessage, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msg := range msgs {
		r.appendLocked(msg, at)
	}
}

func (r *OutboxRepository) appendLocked(msg domain.OutboxMessage, at time.Time) domain.OutboxMessage {
	if existing, ok := r.byID[msg.ID]; ok {
		return existing.msg
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = at
	}
	msg.Payload = slices.Clone(msg.Payload)

	entry := &outboxEntry{msg: msg, status: domain.OutboxStatusPending, updatedAt: at}
	r.log = append(r.log, entry)
	r.byID[msg.ID] = entry
	r.pending++
	return msg
}

// PullPending не меняет статус: сообщение остаётся pending до MarkSent/MarkFailed.
func (r *OutboxRepository) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.collectPending(limit), nil
}

func (r *OutboxRepository) Stats(_ context.Context) (domain.OutboxStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := domain.OutboxStats{PendingCount: r.pending}
	for _, entry := range r.log {
		switch entry.status {
		case domain.OutboxStatusFailed:
			stats.FailedCount++
		case domain.OutboxStatusPending:
			if stats.OldestPendingAt.IsZero() || entry.msg.CreatedAt.Before(stats.OldestPendingAt) {
				stats.OldestPendingAt = entry.msg.CreatedAt
			}
		}
	}
	return stats, nil
}

func (r *OutboxRepository) MarkSent(_ context.Context, id string) error {
	return r.settle(id, domain.OutboxStatusSent)
}

func (r *OutboxRepository) MarkFailed(_ context.Context, id string) error {
	return r.settle(id, domain.OutboxStatusFailed)
}

func (r *OutboxRepository) settle(id string, status domain.OutboxStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.byID[id]
	if !ok {
		return domain.ErrOutboxPublish
	}
	if entry.status == domain.OutboxStatusPending {
		r.pending--
	}
	entry.status = status
	entry.attempts++
	entry.updatedAt = time.Now().UTC()
	return nil
}

// AllPending отдаёт снимок backlog для тестов.
func (r *OutboxRepository) AllPending() []domain.OutboxMessage {
	return r.collectPending(-1)
}

func (r *OutboxRepository) collectPending(limit int) []domain.OutboxMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OutboxMessage, 0, r.pending)
	for _, entry := range r.log {
		if limit >= 0 && len(result) == limit {
			break
		}
		if entry.status == domain.OutboxStatusPending {
			msg := entry.msg
			msg.Payload = slices.Clone(msg.Payload)
			result = append(result, msg)
		}
	}
	return result
}

var _ domain.OutboxRepository = (*OutboxRepository)(nil)
