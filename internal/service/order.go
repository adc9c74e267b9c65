package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type Orders struct {
	orders port.OrderRepository
}

func NewOrders(orders port.OrderRepository) *Orders {
	return &Orders{orders: orders}
}

// ListByUser returns the user's orders, newest first.
func (s *Orders) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	orders, err := s.orders.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}
	return orders, nil
}

// Items returns the line items recorded with the order. Only the owner or an admin may read them.
func (s *Orders) Items(ctx context.Context, caller domain.User, orderID int64) ([]domain.OrderItem, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if order.UserID != caller.ID && !caller.IsAdmin() {
		return nil, fmt.Errorf("order[%d]: %w", orderID, domain.ErrForbidden)
	}

	return order.Items, nil
}
