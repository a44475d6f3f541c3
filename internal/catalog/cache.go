package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/model"
	"github.com/kleytondigital/shopflow-catalog-ai-sub001/internal/platform/cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ListingCache keeps each store's active product set in Redis.
type ListingCache struct {
	redis *cache.RedisClient
	ttl   time.Duration
}

func NewListingCache(c *cache.RedisClient, ttl time.Duration) *ListingCache {
	return &ListingCache{redis: c, ttl: ttl}
}

func listingKey(storeID string) string {
	return fmt.Sprintf("catalog:%s:products", storeID)
}

// Get returns false on a cache miss.
func (c *ListingCache) Get(ctx context.Context, storeID string) ([]model.Product, bool, error) {
	data, err := c.redis.Client.Get(ctx, listingKey(storeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "catalog cache: get")
	}
	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, errors.Wrap(err, "catalog cache: decode")
	}
	return products, true, nil
}

func (c *ListingCache) Set(ctx context.Context, storeID string, products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "catalog cache: encode")
	}
	return errors.Wrap(c.redis.Client.Set(ctx, listingKey(storeID), data, c.ttl).Err(), "catalog cache: set")
}

func (c *ListingCache) Invalidate(ctx context.Context, storeID string) error {
	return c.redis.DeleteByPattern(ctx, fmt.Sprintf("catalog:%s:*", storeID))
}
