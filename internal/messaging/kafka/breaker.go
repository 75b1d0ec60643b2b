package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// ErrBrokerUnavailable возвращается, пока breaker открыт: публикация не выполнялась.
var ErrBrokerUnavailable = errors.New("kafka broker unavailable: circuit open")

// BreakerConfig задаёт пороги circuit breaker вокруг публикации.
type BreakerConfig struct {
	Name                string
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
	HalfOpenRequests    uint32
}

// DefaultBreakerConfig: 5 ошибок подряд открывают breaker на 30 секунд.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:                "kafka-outbox",
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
		HalfOpenRequests:    1,
	}
}

// BreakerPublisher перестаёт дёргать брокер после серии ошибок, чтобы outbox worker
// не тратил попытки впустую; события остаются pending и уйдут после восстановления.
type BreakerPublisher struct {
	next   domain.OutboxPublisher
	cb     *gobreaker.CircuitBreaker[struct{}]
	logger *log.Entry
}

// NewBreakerPublisher оборачивает publisher в circuit breaker.
func NewBreakerPublisher(next domain.OutboxPublisher, cfg BreakerConfig, logger *log.Entry) *BreakerPublisher {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = def.ConsecutiveFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = def.HalfOpenRequests
	}
	if logger == nil {
		logger = log.WithField("component", "kafka-breaker")
	}

	threshold := cfg.ConsecutiveFailures
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// Отмена контекста не говорит о здоровье брокера.
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(log.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}

	return &BreakerPublisher{
		next:   next,
		cb:     gobreaker.NewCircuitBreaker[struct{}](settings),
		logger: logger,
	}
}

// Publish передаёт событие дальше, если breaker закрыт или пропускает пробный запрос.
func (b *BreakerPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	_, err := b.cb.Execute(func() (struct{}, error) {
		return struct{}{}, b.next.Publish(ctx, event)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrBrokerUnavailable, err)
	}
	return err
}

// State возвращает текущее состояние breaker (closed, half-open, open).
func (b *BreakerPublisher) State() string {
	return b.cb.State().String()
}

var _ domain.OutboxPublisher = (*BreakerPublisher)(nil)
