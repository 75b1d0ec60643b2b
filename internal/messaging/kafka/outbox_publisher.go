package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

var errPublisherNotInitialized = errors.New("kafka outbox publisher is not initialized")

// OutboxTopicPublisher публикует outbox-сообщения в заданный Kafka topic.
// Ключом сообщения служит id заказа, поэтому события одного заказа попадают в одну партицию по порядку.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
	headers  []Header
	now      func() time.Time
}

// NewOutboxPublisher создаёт Kafka-паблишер для transactional outbox.
func NewOutboxPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// NewDeadLetterPublisher создаёт паблишер для DLQ; каждое сообщение помечается исходным topic.
func NewDeadLetterPublisher(producer *Producer, topic, originalTopic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicDeadLetterQueue
	}
	p := NewOutboxPublisher(producer, topic)
	p.headers = []Header{{Key: HeaderOriginalTopic, Value: originalTopic}}
	return p
}

// Topic возвращает topic назначения.
func (p *OutboxTopicPublisher) Topic() string {
	return p.topic
}

func (p *OutboxTopicPublisher) Publish(ctx context.Context, event domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return errPublisherNotInitialized
	}

	key := event.AggregateID
	if key == "" {
		key = event.ID
	}

	headers := append([]Header{
		{Key: HeaderEventType, Value: event.EventType},
		{Key: HeaderAggregateType, Value: event.AggregateType},
		{Key: HeaderOutboxID, Value: event.ID},
	}, p.headers...)
	return p.producer.PublishJSON(ctx, p.topic, key, NewEnvelope(event, p.now()), headers...)
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
