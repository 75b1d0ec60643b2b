package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/service/outbox"
)

// initKafkaProducer создаёт Kafka producer, если список brokers не пустой.
// Пустой список даёт nil, nil.
func initKafkaProducer(brokers []string, clientID string, logger *log.Entry) (*kafka.Producer, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokers, clientID)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer")
		return nil, err
	}

	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer, nil
}

// outboxPublishers собирает основной и DLQ паблишеры для outbox worker.
// Без producer события уходят в лог, DLQ не используется.
func outboxPublishers(cfg Config, producer *kafka.Producer, logger *log.Entry) (primary, dlq domain.OutboxPublisher) {
	if producer == nil {
		logger.Warn("kafka is not configured, order events are written to the log")
		return outbox.NewLogPublisher(logger.WithField("component", "outbox-log-publisher")), nil
	}

	topicPublisher := kafka.NewOutboxPublisher(producer, cfg.KafkaTopic)
	breakerCfg := kafka.DefaultBreakerConfig()
	if cfg.KafkaBreakerFailures > 0 {
		breakerCfg.ConsecutiveFailures = cfg.KafkaBreakerFailures
	}
	if cfg.KafkaBreakerTimeout > 0 {
		breakerCfg.OpenTimeout = cfg.KafkaBreakerTimeout
	}

	primary = kafka.NewBreakerPublisher(topicPublisher, breakerCfg, logger.WithField("component", "kafka-breaker"))
	dlq = kafka.NewDeadLetterPublisher(producer, cfg.KafkaDLQTopic, topicPublisher.Topic())
	return primary, dlq
}

// closeKafka закрывает Kafka producer, если он не nil.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}
