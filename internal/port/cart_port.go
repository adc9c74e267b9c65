package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	// GetCart returns the user's cart without locking it. A user without a cart gets an empty one.
	GetCart(ctx context.Context, userID int64) (domain.Cart, error)
	// LockCart creates the cart row if needed and holds its lock until the transaction ends.
	LockCart(ctx context.Context, userID int64) (domain.Cart, error)
	GetCartView(ctx context.Context, userID int64) ([]domain.CartViewLine, error)
	SetItem(ctx context.Context, cartID int64, line domain.CartLine) error
	DeleteItem(ctx context.Context, cartID int64, productID uuid.UUID) (bool, error)
	ClearCart(ctx context.Context, cartID int64) (int64, error)
}
