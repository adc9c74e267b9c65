// Package kafka publishes outbox events with segmentio/kafka-go.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher writes every event to topic, keyed by the event key so one user's orders stay in order.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, events ...domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msgs = append(msgs, toMessage(event))
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(event domain.OutboxEvent) kafka.Message {
	return kafka.Message{
		Key:   []byte(event.Key),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(event.EventID.String())},
			{Key: headerEventType, Value: []byte(event.Topic)},
		},
		Time: event.CreatedAt,
	}
}
