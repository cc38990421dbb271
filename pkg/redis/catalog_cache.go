package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

const (
	categoriesKey = "catalog:categories"
	productsKey   = "catalog:products"
)

var ErrCacheMiss = errors.New("cache miss")

// CatalogCache keeps the full category and in-stock product lists as JSON
// blobs. Entries expire after the base TTL plus up to a minute of jitter so
// replicas do not all refill at once.
type CatalogCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CatalogCache{client: client, baseTTL: ttl}
}

func (c *CatalogCache) GetCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.get(ctx, categoriesKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogCache) SetCategories(ctx context.Context, categories []models.Category) error {
	return c.set(ctx, categoriesKey, categories)
}

func (c *CatalogCache) GetProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.get(ctx, productsKey, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogCache) SetProducts(ctx context.Context, products []models.Product) error {
	return c.set(ctx, productsKey, products)
}

// Invalidate drops both catalog entries.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoriesKey, productsKey).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *CatalogCache) get(ctx context.Context, key string, dst any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get %s failed: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (c *CatalogCache) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	jitter := time.Duration(rand.IntN(60)) * time.Second
	if err := c.client.Set(ctx, key, data, c.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set %s failed: %w", key, err)
	}
	return nil
}
