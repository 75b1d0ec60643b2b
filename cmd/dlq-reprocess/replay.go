package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
)

type replayStats struct {
	processed int
	replayed  int
	skipped   int
}

func (s *replayStats) add(other replayStats) {
	s.processed += other.processed
	s.replayed += other.replayed
	s.skipped += other.skipped
}

// replayer читает DLQ по партициям в пределах общего лимита.
type replayer struct {
	cfg      config
	offsets  offsetReader
	streams  streamSource
	producer *kafka.Producer
	logger   *log.Entry
	// seen отсекает повторные dead letter одного outbox-события в рамках прогона.
	seen map[string]struct{}
}

func newReplayer(cfg config, deps kafkaDeps) (*replayer, error) {
	if deps.offsets == nil || deps.streams == nil {
		return nil, errors.New("kafka client and consumer are required")
	}
	if cfg.execute && deps.producer == nil {
		return nil, errors.New("producer is required in execute mode")
	}
	return &replayer{
		cfg:      cfg,
		offsets:  deps.offsets,
		streams:  deps.streams,
		producer: deps.producer,
		logger: log.WithFields(log.Fields{
			"component":    "dlq-reprocess",
			"source_topic": cfg.sourceTopic,
			"mode":         cfg.mode(),
		}),
		seen: make(map[string]struct{}),
	}, nil
}

func (r *replayer) run(ctx context.Context) (replayStats, error) {
	var total replayStats

	partitions, err := r.offsets.Partitions(r.cfg.sourceTopic)
	if err != nil {
		return total, fmt.Errorf("get partitions for topic %s: %w", r.cfg.sourceTopic, err)
	}
	slices.Sort(partitions)
	r.logger.WithFields(log.Fields{"partitions": len(partitions), "limit": r.cfg.limit}).Info("dlq replay started")

	for _, partition := range partitions {
		budget := r.cfg.limit - total.processed
		if budget <= 0 {
			break
		}
		stats, err := r.drainPartition(ctx, partition, budget)
		total.add(stats)
		if err != nil {
			return total, err
		}
	}

	r.logger.WithFields(log.Fields{
		"processed": total.processed,
		"replayed":  total.replayed,
		"skipped":   total.skipped,
	}).Info("dlq replay finished")
	return total, nil
}

// window возвращает [start, end) для чтения партиции; from-newest берёт хвост длиной budget.
func (r *replayer) window(partition int32, budget int) (int64, int64, error) {
	oldest, err := r.offsets.GetOffset(r.cfg.sourceTopic, partition, sarama.OffsetOldest)
	if err != nil {
		return 0, 0, fmt.Errorf("get oldest offset for partition %d: %w", partition, err)
	}
	newest, err := r.offsets.GetOffset(r.cfg.sourceTopic, partition, sarama.OffsetNewest)
	if err != nil {
		return 0, 0, fmt.Errorf("get newest offset for partition %d: %w", partition, err)
	}
	if r.cfg.fromNewest {
		oldest = max(oldest, newest-int64(budget))
	}
	return oldest, newest, nil
}

func (r *replayer) drainPartition(ctx context.Context, partition int32, budget int) (replayStats, error) {
	var stats replayStats

	start, end, err := r.window(partition, budget)
	if err != nil || start >= end {
		return stats, err
	}

	stream, err := r.streams.ConsumePartition(r.cfg.sourceTopic, partition, start)
	if err != nil {
		return stats, fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = stream.Close() }()

	idle := time.NewTimer(r.cfg.idleTimeout)
	defer idle.Stop()

	for stats.processed < budget {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case <-idle.C:
			return stats, nil
		case cerr := <-stream.Errors():
			if cerr != nil {
				return stats, fmt.Errorf("partition %d consumer error: %w", partition, cerr)
			}
		case msg, ok := <-stream.Messages():
			if !ok || msg == nil || msg.Offset >= end {
				return stats, nil
			}
			idle.Reset(r.cfg.idleTimeout)

			stats.processed++
			replayed, err := r.handle(ctx, msg)
			if err != nil {
				return stats, err
			}
			if replayed {
				stats.replayed++
			} else {
				stats.skipped++
			}
			if msg.Offset+1 >= end {
				return stats, nil
			}
		}
	}
	return stats, nil
}

// handle публикует или только показывает одно сообщение DLQ.
// Нераспознанные сообщения и повторы пропускаются без ошибки.
func (r *replayer) handle(ctx context.Context, msg *sarama.ConsumerMessage) (bool, error) {
	logger := r.logger.WithFields(log.Fields{"partition": msg.Partition, "offset": msg.Offset})

	replay, err := decodeDeadLetter(msg, r.cfg.targetTopic)
	if err != nil {
		logger.WithError(err).Warn("skip unsupported dlq message")
		return false, nil
	}
	if _, dup := r.seen[replay.event.ID]; dup {
		logger.WithField("outbox_id", replay.event.ID).Info("skip duplicate dead letter")
		return false, nil
	}
	r.seen[replay.event.ID] = struct{}{}

	logger = logger.WithFields(log.Fields{
		"target_topic": replay.topic,
		"outbox_id":    replay.event.ID,
		"event_type":   replay.event.EventType,
		"order_id":     replay.event.AggregateID,
	})
	if !r.cfg.execute {
		logger.Info("dlq replay candidate")
		return true, nil
	}

	if err := kafka.NewOutboxPublisher(r.producer, replay.topic).Publish(ctx, replay.event); err != nil {
		return false, fmt.Errorf("publish replay message %s: %w", replay.event.ID, err)
	}
	logger.Debug("dlq message replayed")
	return true, nil
}
