package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"

	tracerName = "github.com/nikolayk812/storefront/internal/service"
)

type Checkout struct {
	tx      port.Transactor
	cache   port.ProductCache
	log     *zap.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	maxRetries uint64
	newBackOff func() backoff.BackOff
}

type CheckoutOption func(*Checkout)

// WithMaxRetries sets how many times a checkout that hit a transaction conflict is retried.
func WithMaxRetries(n uint64) CheckoutOption {
	return func(c *Checkout) { c.maxRetries = n }
}

func WithProductCache(cache port.ProductCache) CheckoutOption {
	return func(c *Checkout) { c.cache = cache }
}

func WithBackOff(fn func() backoff.BackOff) CheckoutOption {
	return func(c *Checkout) { c.newBackOff = fn }
}

func NewCheckout(tx port.Transactor, log *zap.Logger, m *metrics.Metrics, opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		tx:         tx,
		log:        log,
		metrics:    m,
		tracer:     otel.Tracer(tracerName),
		maxRetries: 3,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 20 * time.Millisecond
			b.MaxInterval = 500 * time.Millisecond
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Checkout converts the given lines into an order and empties the user's cart.
func (c *Checkout) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Receipt, error) {
	return c.execute(ctx, req.UserID, req.Validate, func(domain.Cart) ([]domain.CartLine, error) {
		return req.Lines, nil
	})
}

// CheckoutCart converts the user's current cart into an order.
func (c *Checkout) CheckoutCart(ctx context.Context, userID int64) (domain.Receipt, error) {
	validate := func() error {
		if userID <= 0 {
			return domain.NewValidationError("user_id", "is required")
		}
		return nil
	}

	return c.execute(ctx, userID, validate, func(cart domain.Cart) ([]domain.CartLine, error) {
		if cart.IsEmpty() {
			return nil, domain.NewValidationError("items", "no items to order")
		}
		return cart.Snapshot(), nil
	})
}

func (c *Checkout) execute(
	ctx context.Context,
	userID int64,
	validate func() error,
	linesOf func(cart domain.Cart) ([]domain.CartLine, error),
) (receipt domain.Receipt, err error) {
	ctx, span := c.tracer.Start(ctx, "checkout.Checkout",
		trace.WithAttributes(attribute.Int64("user.id", userID)),
	)
	start := time.Now()
	attempts := 0

	defer func() {
		c.observe(ctx, span, start, attempts, userID, receipt, err)
	}()

	if err := validate(); err != nil {
		return domain.Receipt{}, err
	}

	operation := func() (domain.Receipt, error) {
		attempts++

		r, err := c.placeOrder(ctx, userID, linesOf)
		if err != nil && !errors.Is(err, domain.ErrTransactionConflict) {
			return domain.Receipt{}, backoff.Permanent(err)
		}
		return r, err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)

	receipt, err = backoff.RetryWithData(operation, policy)
	if err != nil {
		return domain.Receipt{}, err
	}

	if c.cache != nil {
		if cacheErr := c.cache.Invalidate(ctx); cacheErr != nil {
			logging.FromContext(ctx, c.log).Warn("product cache invalidation failed", zap.Error(cacheErr))
		}
	}

	return receipt, nil
}

// placeOrder is one transaction attempt: lock cart, reserve stock, record order and event, clear cart.
func (c *Checkout) placeOrder(
	ctx context.Context,
	userID int64,
	linesOf func(cart domain.Cart) ([]domain.CartLine, error),
) (domain.Receipt, error) {
	var receipt domain.Receipt

	err := c.tx.WithinTx(ctx, func(ctx context.Context, store port.TxStore) error {
		cart, err := store.Carts().LockCart(ctx, userID)
		if err != nil {
			return fmt.Errorf("carts.LockCart: %w", err)
		}

		lines, err := linesOf(cart)
		if err != nil {
			return err
		}

		items, err := ReserveStock(ctx, store.Products(), lines)
		if err != nil {
			return err
		}

		total, err := domain.SumItems(items)
		if err != nil {
			return err
		}

		order, err := store.Orders().CreateOrder(ctx, domain.Order{
			UserID: userID,
			Total:  total,
			Status: domain.OrderStatusPlaced,
			Items:  items,
		})
		if err != nil {
			return fmt.Errorf("orders.CreateOrder: %w", err)
		}

		event, err := newOrderPlacedEvent(order)
		if err != nil {
			return fmt.Errorf("newOrderPlacedEvent: %w", err)
		}

		if err := store.Outbox().InsertEvent(ctx, event); err != nil {
			return fmt.Errorf("outbox.InsertEvent: %w", err)
		}

		if _, err := store.Carts().ClearCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("carts.ClearCart: %w", err)
		}

		receipt = domain.Receipt{
			OrderID:   order.ID,
			Total:     order.Total,
			Status:    order.Status,
			Items:     order.Items,
			CreatedAt: order.CreatedAt,
		}
		return nil
	})

	return receipt, err
}

func (c *Checkout) observe(ctx context.Context, span trace.Span, start time.Time, attempts int, userID int64, receipt domain.Receipt, err error) {
	latency := time.Since(start)

	outcome := outcomeOK
	switch {
	case domain.IsRejection(err):
		outcome = outcomeRejected
	case err != nil:
		outcome = outcomeFailed
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetAttributes(attribute.Int64("order.id", receipt.OrderID))
		span.SetStatus(codes.Ok, outcome)
	}
	span.End()

	if c.metrics != nil {
		c.metrics.CheckoutTotal.WithLabelValues(outcome).Inc()
		c.metrics.CheckoutDuration.Observe(latency.Seconds())
		if attempts > 0 {
			c.metrics.CheckoutAttempts.Observe(float64(attempts))
		}
	}

	fields := []zap.Field{
		zap.Int64("user_id", userID),
		zap.String("outcome", outcome),
		zap.Int("attempts", attempts),
		zap.Duration("latency", latency),
	}
	if sc := span.SpanContext(); sc.IsValid() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	} else {
		fields = append(fields, zap.Int64("order_id", receipt.OrderID), zap.Stringer("total", receipt.Total))
	}

	logger := logging.FromContext(ctx, c.log)
	if outcome == outcomeFailed {
		logger.Error("checkout_done", fields...)
		return
	}
	logger.Info("checkout_done", fields...)
}

type orderPlacedPayload struct {
	OrderID   int64             `json:"order_id"`
	UserID    int64             `json:"user_id"`
	Total     string            `json:"total"`
	Currency  string            `json:"currency"`
	Status    string            `json:"status"`
	Items     []orderPlacedItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

type orderPlacedItem struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func newOrderPlacedEvent(order domain.Order) (domain.OutboxEvent, error) {
	payload := orderPlacedPayload{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total.Amount.StringFixed(2),
		Currency:  order.Total.Currency.String(),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, orderPlacedItem{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount.StringFixed(2),
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return domain.OutboxEvent{}, err
	}

	return domain.OutboxEvent{
		Topic:   domain.TopicOrderPlaced,
		Key:     fmt.Sprint(order.UserID),
		Payload: data,
	}, nil
}
