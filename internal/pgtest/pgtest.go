// Package pgtest starts a migrated Postgres container for integration tests.
package pgtest

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func Start(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	if err := migrations.Up(connStr); err != nil {
		return nil, "", fmt.Errorf("migrations.Up: %w", err)
	}

	return postgresContainer, connStr, nil
}

func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `TRUNCATE TABLE outbox, order_items, orders, cart_items, carts, products, categories, users
		RESTART IDENTITY CASCADE`)
	return err
}

func InsertUser(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var userID int64
	err := pool.QueryRow(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1, 'x') RETURNING user_id",
		gofakeit.UUID()+"@example.com",
	).Scan(&userID)
	return userID, err
}

func InsertCategory(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var categoryID int64
	err := pool.QueryRow(ctx,
		"INSERT INTO categories (category_name) VALUES ($1) RETURNING category_id",
		gofakeit.UUID(),
	).Scan(&categoryID)
	return categoryID, err
}

// InsertProduct creates a RUB-priced product in a fresh category.
func InsertProduct(ctx context.Context, pool *pgxpool.Pool, price decimal.Decimal, stock int32) (uuid.UUID, error) {
	categoryID, err := InsertCategory(ctx, pool)
	if err != nil {
		return uuid.Nil, fmt.Errorf("InsertCategory: %w", err)
	}

	productID := uuid.New()
	_, err = pool.Exec(ctx, `INSERT INTO products (product_id, category_id, product_name, price_amount, price_currency, stock_quantity)
		VALUES ($1, $2, $3, $4, 'RUB', $5)`,
		productID, categoryID, gofakeit.ProductName(), price, stock,
	)
	if err != nil {
		return uuid.Nil, err
	}

	return productID, nil
}

func Stock(ctx context.Context, pool *pgxpool.Pool, productID uuid.UUID) (int32, error) {
	var stock int32
	err := pool.QueryRow(ctx, "SELECT stock_quantity FROM products WHERE product_id = $1", productID).Scan(&stock)
	return stock, err
}
