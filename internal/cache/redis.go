// Package cache provides the Redis-backed product list cache. The creation
// pipeline only invalidates; reads go through the cache-aside helpers.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/averlon/catalog-api/internal/domain/product"
)

// ErrMiss is returned when the requested key is not cached.
var ErrMiss = errors.New("cache miss")

// Redis wraps a redis client with JSON serialization and a fixed TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Redis cache with the given entry TTL.
func New(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Invalidate removes the given key. Removing a missing key is not an error.
func (c *Redis) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrapf(err, "invalidate %q", key)
	}
	return nil
}

// cachedProduct is the wire form of a product in the cache. Kept separate
// from the domain type so cache payloads survive field renames.
type cachedProduct struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	ReleaseDate   time.Time       `json:"releaseDate"`
	StockQuantity int             `json:"stockQuantity"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	Available     bool            `json:"available"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// GetProducts returns the cached product collection under key, or ErrMiss.
func (c *Redis) GetProducts(ctx context.Context, key string) ([]product.Product, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, errors.Wrapf(err, "get %q", key)
	}

	var cached []cachedProduct
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, errors.Wrapf(err, "decode %q", key)
	}

	products := make([]product.Product, len(cached))
	for i, cp := range cached {
		products[i] = product.Product{
			ID:            cp.ID,
			Name:          cp.Name,
			Brand:         cp.Brand,
			SKU:           cp.SKU,
			Category:      product.Category(cp.Category),
			Price:         cp.Price,
			ReleaseDate:   cp.ReleaseDate,
			StockQuantity: cp.StockQuantity,
			ImageURL:      cp.ImageURL,
			Available:     cp.Available,
			CreatedAt:     cp.CreatedAt,
		}
	}
	return products, nil
}

// SetProducts stores the product collection under key with the cache TTL.
func (c *Redis) SetProducts(ctx context.Context, key string, products []product.Product) error {
	cached := make([]cachedProduct, len(products))
	for i, p := range products {
		cached[i] = cachedProduct{
			ID:            p.ID,
			Name:          p.Name,
			Brand:         p.Brand,
			SKU:           p.SKU,
			Category:      string(p.Category),
			Price:         p.Price,
			ReleaseDate:   p.ReleaseDate,
			StockQuantity: p.StockQuantity,
			ImageURL:      p.ImageURL,
			Available:     p.Available,
			CreatedAt:     p.CreatedAt,
		}
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return errors.Wrapf(err, "encode %q", key)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}
