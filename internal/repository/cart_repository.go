package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

var (
	errUserIDEmpty    = domain.NewValidationError("", "userID is empty")
	errCartIDEmpty    = domain.NewValidationError("", "cartID is empty")
	errProductIDEmpty = domain.NewValidationError("", "productID is empty")
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) GetCart(ctx context.Context, userID int64) (domain.Cart, error) {
	if userID <= 0 {
		return domain.Cart{}, errUserIDEmpty
	}

	rows, err := r.q.GetCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, wrapErr("q.GetCart", err)
	}

	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, domain.CartLine{
			ProductID: row.ProductID,
			Quantity:  row.Quantity,
			CreatedAt: row.CreatedAt,
		})
	}

	return domain.Cart{
		UserID: userID,
		Lines:  lines,
	}, nil
}

func (r *cartRepository) LockCart(ctx context.Context, userID int64) (domain.Cart, error) {
	if userID <= 0 {
		return domain.Cart{}, errUserIDEmpty
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		cartID, err := q.LockCart(ctx, userID)
		if err != nil {
			return domain.Cart{}, wrapErr("q.LockCart", err)
		}

		rows, err := q.GetCartItems(ctx, cartID)
		if err != nil {
			return domain.Cart{}, wrapErr("q.GetCartItems", err)
		}

		lines := make([]domain.CartLine, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, domain.CartLine{
				ProductID: row.ProductID,
				Quantity:  row.Quantity,
				CreatedAt: row.CreatedAt,
			})
		}

		return domain.Cart{
			ID:     cartID,
			UserID: userID,
			Lines:  lines,
		}, nil
	})
}

func (r *cartRepository) GetCartView(ctx context.Context, userID int64) ([]domain.CartViewLine, error) {
	if userID <= 0 {
		return nil, errUserIDEmpty
	}

	rows, err := r.q.GetCartView(ctx, userID)
	if err != nil {
		return nil, wrapErr("q.GetCartView", err)
	}

	lines, err := mapRows(rows, mapGetCartViewRowToDomain)
	if err != nil {
		return nil, fmt.Errorf("mapGetCartViewRowToDomain: %w", err)
	}

	return lines, nil
}

func (r *cartRepository) SetItem(ctx context.Context, cartID int64, line domain.CartLine) error {
	if cartID <= 0 {
		return errCartIDEmpty
	}
	if line.ProductID == uuid.Nil {
		return errProductIDEmpty
	}

	err := r.q.UpsertCartItem(ctx, db.UpsertCartItemParams{
		CartID:    cartID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
	})
	if err != nil {
		return wrapErr("q.UpsertCartItem", err)
	}

	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID int64, productID uuid.UUID) (bool, error) {
	if cartID <= 0 {
		return false, errCartIDEmpty
	}

	rowsAffected, err := r.q.DeleteCartItem(ctx, db.DeleteCartItemParams{
		CartID:    cartID,
		ProductID: productID,
	})
	if err != nil {
		return false, wrapErr("q.DeleteCartItem", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, cartID int64) (int64, error) {
	if cartID <= 0 {
		return 0, errCartIDEmpty
	}

	rowsAffected, err := r.q.ClearCart(ctx, cartID)
	if err != nil {
		return 0, wrapErr("q.ClearCart", err)
	}

	return rowsAffected, nil
}

func mapGetCartViewRowToDomain(row db.GetCartViewRow) (domain.CartViewLine, error) {
	price, err := mapMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.CartViewLine{}, err
	}

	return domain.CartViewLine{
		ProductID: row.ProductID,
		Name:      row.ProductName,
		ImageURL:  row.ImageUrl,
		UnitPrice: price,
		Quantity:  row.Quantity,
		Stock:     row.StockQuantity,
	}, nil
}
