package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// CreateOrder inserts the order and its items. The returned order carries the assigned id and creation time.
func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.UserID <= 0 {
		return domain.Order{}, errUserIDEmpty
	}
	if len(order.Items) == 0 {
		return domain.Order{}, domain.NewValidationError("items", "order has no items")
	}
	if order.Status == "" {
		order.Status = domain.OrderStatusPlaced
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		row, err := q.CreateOrder(ctx, db.CreateOrderParams{
			UserID:        order.UserID,
			TotalAmount:   order.Total.Amount,
			TotalCurrency: order.Total.Currency.String(),
			Status:        string(order.Status),
		})
		if err != nil {
			return domain.Order{}, wrapErr("q.CreateOrder", err)
		}

		for _, item := range order.Items {
			err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:           row.OrderID,
				ProductID:         item.ProductID,
				ProductName:       item.ProductName,
				Quantity:          item.Quantity,
				UnitPriceAmount:   item.UnitPrice.Amount,
				UnitPriceCurrency: item.UnitPrice.Currency.String(),
			})
			if err != nil {
				return domain.Order{}, wrapErr("q.CreateOrderItem", err)
			}
		}

		order.ID = row.OrderID
		order.CreatedAt = row.CreatedAt

		return order, nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID int64) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, wrapErr("q.GetOrder", err)
	}

	orders, err := r.withItems(ctx, []db.Order{row})
	if err != nil {
		return domain.Order{}, err
	}

	return orders[0], nil
}

func (r *orderRepository) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, errUserIDEmpty
	}

	rows, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, wrapErr("q.ListOrdersByUser", err)
	}

	return r.withItems(ctx, rows)
}

func (r *orderRepository) withItems(ctx context.Context, rows []db.Order) ([]domain.Order, error) {
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	orderIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		orderIDs = append(orderIDs, row.OrderID)
	}

	itemRows, err := r.q.ListOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, wrapErr("q.ListOrderItems", err)
	}

	itemsByOrder := make(map[int64][]domain.OrderItem, len(rows))
	for _, itemRow := range itemRows {
		unitPrice, err := mapMoney(itemRow.UnitPriceAmount, itemRow.UnitPriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("order[%d] item: %w", itemRow.OrderID, err)
		}

		itemsByOrder[itemRow.OrderID] = append(itemsByOrder[itemRow.OrderID], domain.OrderItem{
			ProductID:   itemRow.ProductID,
			ProductName: itemRow.ProductName,
			Quantity:    itemRow.Quantity,
			UnitPrice:   unitPrice,
		})
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		total, err := mapMoney(row.TotalAmount, row.TotalCurrency)
		if err != nil {
			return nil, fmt.Errorf("order[%d] total: %w", row.OrderID, err)
		}

		orders = append(orders, domain.Order{
			ID:        row.OrderID,
			UserID:    row.UserID,
			Total:     total,
			Status:    domain.OrderStatus(row.Status),
			Items:     itemsByOrder[row.OrderID],
			CreatedAt: row.CreatedAt,
		})
	}

	return orders, nil
}
