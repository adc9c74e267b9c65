package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// OrderRepository is append-only.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (domain.Order, error)
	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
}

type OutboxRepository interface {
	InsertEvent(ctx context.Context, event domain.OutboxEvent) error
	FetchPending(ctx context.Context, limit int32) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, ids []int64) error
}
