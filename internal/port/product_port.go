package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error)

	GetStock(ctx context.Context, productID uuid.UUID) (int32, error)
	// LockForUpdate row-locks the given products in id order. Missing ids are absent from the result.
	LockForUpdate(ctx context.Context, productIDs []uuid.UUID) ([]domain.StockLevel, error)
	// DecrementStock reports false when the product has less than qty in stock.
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int32) (bool, error)
}

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (int64, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, categoryID int64) (bool, error)
}
