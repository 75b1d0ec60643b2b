package main

import (
	"fmt"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
)

// offsetReader — часть sarama.Client, которая нужна для выбора окна чтения.
type offsetReader interface {
	GetOffset(topic string, partition int32, time int64) (int64, error)
	Partitions(topic string) ([]int32, error)
	Close() error
}

type partitionStream interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	Close() error
}

type streamSource interface {
	ConsumePartition(topic string, partition int32, offset int64) (partitionStream, error)
	Close() error
}

// saramaStreams сужает sarama.Consumer до streamSource.
type saramaStreams struct {
	consumer sarama.Consumer
}

func (s saramaStreams) ConsumePartition(topic string, partition int32, offset int64) (partitionStream, error) {
	return s.consumer.ConsumePartition(topic, partition, offset)
}

func (s saramaStreams) Close() error {
	return s.consumer.Close()
}

// kafkaDeps держит подключения одного прогона; producer есть только в режиме execute.
type kafkaDeps struct {
	offsets  offsetReader
	streams  streamSource
	producer *kafka.Producer
}

func (d kafkaDeps) close() {
	if d.producer != nil {
		_ = d.producer.Close()
	}
	if d.streams != nil {
		_ = d.streams.Close()
	}
	if d.offsets != nil {
		_ = d.offsets.Close()
	}
}

var connectKafka = func(cfg config) (kafkaDeps, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.ClientID = replayClientID
	saramaCfg.Consumer.Return.Errors = true

	client, err := sarama.NewClient(cfg.brokers, saramaCfg)
	if err != nil {
		return kafkaDeps{}, fmt.Errorf("connect to kafka %v: %w", cfg.brokers, err)
	}
	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		_ = client.Close()
		return kafkaDeps{}, fmt.Errorf("create dlq consumer: %w", err)
	}

	deps := kafkaDeps{offsets: client, streams: saramaStreams{consumer: consumer}}
	if cfg.execute {
		if deps.producer, err = kafka.NewProducer(cfg.brokers, replayClientID); err != nil {
			deps.close()
			return kafkaDeps{}, err
		}
	}
	return deps, nil
}
