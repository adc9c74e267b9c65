package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

var errCategoryNameEmpty = domain.NewValidationError("", "category name is empty")

type categoryRepository struct {
	q *db.Queries
}

func NewCategory(pool *pgxpool.Pool) port.CategoryRepository {
	return &categoryRepository{q: db.New(pool)}
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.ListCategories(ctx)
	if err != nil {
		return nil, wrapErr("q.ListCategories", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{ID: row.CategoryID, Name: row.CategoryName})
	}

	return categories, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errCategoryNameEmpty
	}

	categoryID, err := r.q.CreateCategory(ctx, name)
	if err != nil {
		return 0, wrapErr("q.CreateCategory", err)
	}

	return categoryID, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	if category.Name == "" {
		return errCategoryNameEmpty
	}

	rowsAffected, err := r.q.UpdateCategory(ctx, db.UpdateCategoryParams{
		CategoryID:   category.ID,
		CategoryName: category.Name,
	})
	if err != nil {
		return wrapErr("q.UpdateCategory", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("category[%d]: %w", category.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, categoryID int64) (bool, error) {
	rowsAffected, err := r.q.DeleteCategory(ctx, categoryID)
	if err != nil {
		return false, wrapErr("q.DeleteCategory", err)
	}

	return rowsAffected > 0, nil
}
