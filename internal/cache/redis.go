package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

const productsKey = "catalog:products"

type ProductCache struct {
	client  redis.Cmdable
	baseTTL time.Duration
	jitter  time.Duration
}

// NewProductCache stores the product listing under one key. Entries live baseTTL plus up to baseTTL/4 of jitter.
func NewProductCache(client redis.Cmdable, baseTTL time.Duration) *ProductCache {
	return &ProductCache{
		client:  client,
		baseTTL: baseTTL,
		jitter:  baseTTL / 4,
	}
}

func (c *ProductCache) GetProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := c.client.Get(ctx, productsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var cached []cachedProduct
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("unmarshal products: %w", err)
	}

	products := make([]domain.Product, 0, len(cached))
	for _, p := range cached {
		product, err := p.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product[%s]: %w", p.ID, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (c *ProductCache) SetProducts(ctx context.Context, products []domain.Product) error {
	cached := make([]cachedProduct, 0, len(products))
	for _, p := range products {
		cached = append(cached, fromDomain(p))
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}

	if err := c.client.Set(ctx, productsKey, data, c.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, productsKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *ProductCache) ttl() time.Duration {
	if c.jitter <= 0 {
		return c.baseTTL
	}
	return c.baseTTL + rand.N(c.jitter)
}
