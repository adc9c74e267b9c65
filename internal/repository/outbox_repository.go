package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type outboxRepository struct {
	q *db.Queries
}

func NewOutbox(pool *pgxpool.Pool) port.OutboxRepository {
	return &outboxRepository{q: db.New(pool)}
}

func NewOutboxWithTx(tx pgx.Tx) port.OutboxRepository {
	return &outboxRepository{q: db.New(tx)}
}

func (r *outboxRepository) InsertEvent(ctx context.Context, event domain.OutboxEvent) error {
	if event.Topic == "" {
		return domain.NewValidationError("", "topic is empty")
	}

	eventID := event.EventID
	if eventID == uuid.Nil {
		eventID = uuid.New()
	}

	err := r.q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		EventID:    eventID,
		Topic:      event.Topic,
		MessageKey: event.Key,
		Payload:    event.Payload,
	})
	if err != nil {
		return wrapErr("q.InsertOutboxEvent", err)
	}

	return nil
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int32) ([]domain.OutboxEvent, error) {
	rows, err := r.q.FetchPendingEvents(ctx, limit)
	if err != nil {
		return nil, wrapErr("q.FetchPendingEvents", err)
	}

	events := make([]domain.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.OutboxEvent{
			ID:        row.ID,
			EventID:   row.EventID,
			Topic:     row.Topic,
			Key:       row.MessageKey,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}

	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := r.q.MarkEventsSent(ctx, ids); err != nil {
		return wrapErr("q.MarkEventsSent", err)
	}

	return nil
}
