package kafka

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func TestToMessage(t *testing.T) {
	event := domain.OutboxEvent{
		ID:        7,
		EventID:   uuid.New(),
		Topic:     domain.TopicOrderPlaced,
		Key:       "42",
		Payload:   []byte(`{"order_id":1}`),
		CreatedAt: time.Now().UTC(),
	}

	msg := toMessage(event)

	assert.Equal(t, []byte("42"), msg.Key)
	assert.Equal(t, event.Payload, msg.Value)
	assert.Equal(t, event.CreatedAt, msg.Time)
	assert.Equal(t, []kafka.Header{
		{Key: headerEventID, Value: []byte(event.EventID.String())},
		{Key: headerEventType, Value: []byte(domain.TopicOrderPlaced)},
	}, msg.Headers)
}

func TestPublish_Empty(t *testing.T) {
	p := NewPublisher([]string{"127.0.0.1:1"}, "unused")
	defer p.Close()

	require.NoError(t, p.Publish(t.Context()))
}

func TestPublish_DeliversToBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}

	ctx := t.Context()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	topic := "orders-" + uuid.NewString()
	createTopic(t, brokers[0], topic)

	p := NewPublisher(brokers, topic)
	defer p.Close()

	events := []domain.OutboxEvent{
		{ID: 1, EventID: uuid.New(), Topic: domain.TopicOrderPlaced, Key: "1", Payload: []byte(`{"order_id":1}`)},
		{ID: 2, EventID: uuid.New(), Topic: domain.TopicOrderPlaced, Key: "1", Payload: []byte(`{"order_id":2}`)},
	}
	require.NoError(t, p.Publish(ctx, events...))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "test-" + uuid.NewString(),
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, want := range events {
		msg, err := reader.ReadMessage(readCtx)
		require.NoError(t, err)
		assert.Equal(t, want.Payload, msg.Value)
		assert.Equal(t, []byte(want.Key), msg.Key)
	}
}

func createTopic(t *testing.T, brokerAddr, topic string) {
	conn, err := kafka.Dial("tcp", brokerAddr)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	require.NoError(t, err)
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	require.NoError(t, err)
}
