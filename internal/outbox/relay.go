// Package outbox delivers committed outbox events to the message broker.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Publisher sends a batch of events. Delivery is at least once; consumers dedupe on EventID.
type Publisher interface {
	Publish(ctx context.Context, events ...domain.OutboxEvent) error
}

type Relay struct {
	outbox    port.OutboxRepository
	publisher Publisher
	breaker   *gobreaker.CircuitBreaker[struct{}]
	log       *zap.Logger
	metrics   *metrics.Metrics

	interval  time.Duration
	batchSize int32
}

type Option func(*Relay)

func WithInterval(d time.Duration) Option {
	return func(r *Relay) { r.interval = d }
}

func WithBatchSize(n int32) Option {
	return func(r *Relay) { r.batchSize = n }
}

// WithBreakerSettings replaces the default circuit breaker settings around the publisher.
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(r *Relay) { r.breaker = gobreaker.NewCircuitBreaker[struct{}](st) }
}

func NewRelay(outbox port.OutboxRepository, publisher Publisher, log *zap.Logger, m *metrics.Metrics, opts ...Option) *Relay {
	r := &Relay{
		outbox:    outbox,
		publisher: publisher,
		log:       log,
		metrics:   m,
		interval:  time.Second,
		batchSize: 100,
	}

	r.breaker = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "outbox-publisher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run polls the outbox until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.log.Warn("outbox flush failed", zap.Error(err))
			}
		}
	}
}

// Flush publishes one batch of pending events in id order and marks it sent.
// It returns how many events were delivered.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	events, err := r.outbox.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("outbox.FetchPending: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	_, err = r.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, r.publisher.Publish(ctx, events...)
	})
	if err != nil {
		if r.metrics != nil {
			r.metrics.OutboxFailed.Add(float64(len(events)))
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, fmt.Errorf("publisher unavailable: %w", err)
		}
		return 0, fmt.Errorf("publisher.Publish: %w", err)
	}

	ids := make([]int64, 0, len(events))
	for _, event := range events {
		ids = append(ids, event.ID)
	}

	// a failure here redelivers the batch on the next tick
	if err := r.outbox.MarkSent(ctx, ids); err != nil {
		return 0, fmt.Errorf("outbox.MarkSent: %w", err)
	}

	if r.metrics != nil {
		r.metrics.OutboxPublished.Add(float64(len(events)))
	}
	r.log.Debug("outbox events published", zap.Int("count", len(events)))

	return len(events), nil
}
