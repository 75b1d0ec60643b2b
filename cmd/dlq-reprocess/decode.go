package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/shop/internal/domain"
	"github.com/vladislavdragonenkov/shop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/shop/internal/service/outbox"
)

// replayMessage — исходное событие из DLQ и topic, куда его вернуть.
type replayMessage struct {
	topic string
	event domain.OutboxMessage
}

// decodeDeadLetter снимает два слоя: kafka.Envelope, внутри него outbox.DeadLetter.
func decodeDeadLetter(msg *sarama.ConsumerMessage, targetTopic string) (replayMessage, error) {
	var envelope kafka.Envelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return replayMessage{}, fmt.Errorf("decode dlq envelope: %w", err)
	}
	if len(envelope.Payload) == 0 || string(envelope.Payload) == "null" {
		return replayMessage{}, errors.New("dlq envelope has no payload")
	}

	var dead outbox.DeadLetter
	if err := json.Unmarshal(envelope.Payload, &dead); err != nil {
		return replayMessage{}, fmt.Errorf("decode dead letter: %w", err)
	}
	switch {
	case len(dead.Payload) == 0:
		return replayMessage{}, errors.New("dead letter does not contain original event payload")
	case dead.OutboxID == "" || dead.EventType == "":
		return replayMessage{}, errors.New("dead letter has no outbox id or event type")
	}

	topic := firstNonEmpty(targetTopic, headerValue(msg, kafka.HeaderOriginalTopic), kafka.TopicOrderEvents)
	return replayMessage{topic: topic, event: dead.Message()}, nil
}

func headerValue(msg *sarama.ConsumerMessage, key string) string {
	for _, h := range msg.Headers {
		if h != nil && string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
