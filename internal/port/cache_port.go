package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/storefront/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// ProductCache holds the public product listing. GetProducts returns ErrCacheMiss when empty.
type ProductCache interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}
