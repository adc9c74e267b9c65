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

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: db.New(pool)}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{q: db.New(tx)}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	if productID == uuid.Nil {
		return domain.Product{}, errProductIDEmpty
	}

	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, wrapErr("q.GetProduct", err)
	}

	product, err := mapProductRowToDomain(db.ListProductsRow(row))
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductRowToDomain: %w", err)
	}

	return product, nil
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, wrapErr("q.ListProducts", err)
	}

	products, err := mapRows(rows, mapProductRowToDomain)
	if err != nil {
		return nil, fmt.Errorf("mapProductRowToDomain: %w", err)
	}

	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (uuid.UUID, error) {
	if err := product.Validate(); err != nil {
		return uuid.Nil, err
	}

	productID := product.ID
	if productID == uuid.Nil {
		productID = uuid.New()
	}

	err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ProductID:     productID,
		CategoryID:    product.CategoryID,
		ProductName:   product.Name,
		Description:   product.Description,
		ImageUrl:      product.ImageURL,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		StockQuantity: product.Stock,
	})
	if err != nil {
		return uuid.Nil, wrapErr("q.CreateProduct", err)
	}

	return productID, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return errProductIDEmpty
	}
	if err := product.Validate(); err != nil {
		return err
	}

	rowsAffected, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		ProductID:     product.ID,
		CategoryID:    product.CategoryID,
		ProductName:   product.Name,
		Description:   product.Description,
		ImageUrl:      product.ImageURL,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		StockQuantity: product.Stock,
	})
	if err != nil {
		return wrapErr("q.UpdateProduct", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("product[%s]: %w", product.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	rowsAffected, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return false, wrapErr("q.DeleteProduct", err)
	}

	return rowsAffected > 0, nil
}

func (r *productRepository) GetStock(ctx context.Context, productID uuid.UUID) (int32, error) {
	stock, err := r.q.GetProductStock(ctx, productID)
	if err != nil {
		return 0, wrapErr("q.GetProductStock", err)
	}

	return stock, nil
}

func (r *productRepository) LockForUpdate(ctx context.Context, productIDs []uuid.UUID) ([]domain.StockLevel, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.LockProducts(ctx, productIDs)
	if err != nil {
		return nil, wrapErr("q.LockProducts", err)
	}

	levels, err := mapRows(rows, func(row db.LockProductsRow) (domain.StockLevel, error) {
		price, err := mapMoney(row.PriceAmount, row.PriceCurrency)
		if err != nil {
			return domain.StockLevel{}, err
		}

		return domain.StockLevel{
			ProductID: row.ProductID,
			Name:      row.ProductName,
			Price:     price,
			Stock:     row.StockQuantity,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("map LockProductsRow: %w", err)
	}

	return levels, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int32) (bool, error) {
	if qty < 1 {
		return false, domain.NewValidationError("quantity", "must be at least 1")
	}

	rowsAffected, err := r.q.DecrementStock(ctx, db.DecrementStockParams{
		Quantity:  qty,
		ProductID: productID,
	})
	if err != nil {
		return false, wrapErr("q.DecrementStock", err)
	}

	return rowsAffected > 0, nil
}

func mapProductRowToDomain(row db.ListProductsRow) (domain.Product, error) {
	price, err := mapMoney(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:           row.ProductID,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		Name:         row.ProductName,
		Description:  row.Description,
		ImageURL:     row.ImageUrl,
		Price:        price,
		Stock:        row.StockQuantity,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
