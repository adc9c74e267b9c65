package domain

import (
	"time"

	"github.com/google/uuid"
)

const TopicOrderPlaced = "order.placed"

// OutboxEvent is written in the same transaction as the change it announces.
type OutboxEvent struct {
	ID      int64
	EventID uuid.UUID
	Topic   string
	Key     string
	Payload []byte

	CreatedAt time.Time
}
