package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Catalog struct {
	products   port.ProductRepository
	categories port.CategoryRepository
	cache      port.ProductCache
	log        *zap.Logger
	metrics    *metrics.Metrics

	group singleflight.Group
}

// NewCatalog builds the catalog service. cache may be nil.
func NewCatalog(products port.ProductRepository, categories port.CategoryRepository, cache port.ProductCache, log *zap.Logger, m *metrics.Metrics) *Catalog {
	return &Catalog{
		products:   products,
		categories: categories,
		cache:      cache,
		log:        log,
		metrics:    m,
	}
}

func (s *Catalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx)
}

func (s *Catalog) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	categoryID, err := s.categories.CreateCategory(ctx, name)
	if err != nil {
		return domain.Category{}, fmt.Errorf("categories.CreateCategory: %w", err)
	}
	return domain.Category{ID: categoryID, Name: name}, nil
}

func (s *Catalog) UpdateCategory(ctx context.Context, category domain.Category) error {
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return fmt.Errorf("categories.UpdateCategory: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *Catalog) DeleteCategory(ctx context.Context, categoryID int64) error {
	deleted, err := s.categories.DeleteCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("categories.DeleteCategory: %w", err)
	}
	if !deleted {
		return fmt.Errorf("category[%d]: %w", categoryID, domain.ErrNotFound)
	}
	return nil
}

// ListProducts serves the listing from cache, loading it once per miss across concurrent callers.
func (s *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			s.countCache(true)
			return products, nil
		}
		if !errors.Is(err, port.ErrCacheMiss) {
			logging.FromContext(ctx, s.log).Warn("product cache read failed", zap.Error(err))
		}
		s.countCache(false)
	}

	v, err, _ := s.group.Do("products", func() (any, error) {
		products, err := s.products.ListProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("products.ListProducts: %w", err)
		}

		if s.cache != nil {
			if err := s.cache.SetProducts(ctx, products); err != nil {
				logging.FromContext(ctx, s.log).Warn("product cache write failed", zap.Error(err))
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

func (s *Catalog) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}
	return product, nil
}

func (s *Catalog) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	productID, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.CreateProduct: %w", err)
	}
	s.invalidate(ctx)

	return s.GetProduct(ctx, productID)
}

func (s *Catalog) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("products.UpdateProduct: %w", err)
	}
	s.invalidate(ctx)

	return s.GetProduct(ctx, product.ID)
}

func (s *Catalog) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	deleted, err := s.products.DeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("products.DeleteProduct: %w", err)
	}
	if !deleted {
		return fmt.Errorf("product[%s]: %w", productID, domain.ErrNotFound)
	}
	s.invalidate(ctx)
	return nil
}

func (s *Catalog) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logging.FromContext(ctx, s.log).Warn("product cache invalidation failed", zap.Error(err))
	}
}

func (s *Catalog) countCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.Inc()
		return
	}
	s.metrics.CacheMisses.Inc()
}
