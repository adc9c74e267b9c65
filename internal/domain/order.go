package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const OrderStatusPlaced OrderStatus = "placed"

// Order is append-only. Items are captured by value at creation.
type Order struct {
	ID     int64
	UserID int64
	Total  Money
	Status OrderStatus
	Items  []OrderItem

	CreatedAt time.Time
}

type OrderItem struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int32
	UnitPrice   Money
}

func (i OrderItem) LineTotal() Money {
	return i.UnitPrice.Mul(i.Quantity)
}

// SumItems returns Σ unit price × quantity. Items must share one currency.
func SumItems(items []OrderItem) (Money, error) {
	var total Money
	for _, item := range items {
		var err error
		if total, err = total.Add(item.LineTotal()); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// CheckoutRequest is a validated request to convert lines into an order.
type CheckoutRequest struct {
	UserID int64
	Lines  []CartLine
}

func (r CheckoutRequest) Validate() error {
	if r.UserID <= 0 {
		return NewValidationError("user_id", "is required")
	}
	if len(r.Lines) == 0 {
		return NewValidationError("items", "no items to order")
	}
	for _, l := range r.Lines {
		if l.ProductID == uuid.Nil {
			return NewValidationError("product_id", "is empty")
		}
		if l.Quantity < 1 {
			return NewValidationError("quantity", "must be at least 1")
		}
	}
	return nil
}

// Receipt is the result of a successful checkout.
type Receipt struct {
	OrderID   int64
	Total     Money
	Status    OrderStatus
	Items     []OrderItem
	CreatedAt time.Time
}
