package repository

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

type RedisRepository struct {
	cache *cache.RedisClient
}

func NewRedisRepository(c *cache.RedisClient) *RedisRepository {
	return &RedisRepository{cache: c}
}

func cartKey(storeID, sessionID string) string {
	return fmt.Sprintf("cart:%s:%s", storeID, sessionID)
}

func (r *RedisRepository) Get(ctx context.Context, storeID, sessionID string) (*model.Cart, error) {
	data, err := r.cache.Client.Get(ctx, cartKey(storeID, sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "cart: get")
	}

	var c model.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "cart: decode")
	}
	return &c, nil
}

func (r *RedisRepository) Save(ctx context.Context, c *model.Cart, ttl time.Duration) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "cart: encode")
	}
	return errors.Wrap(r.cache.Client.Set(ctx, cartKey(c.StoreID, c.SessionID), data, ttl).Err(), "cart: save")
}

func (r *RedisRepository) Delete(ctx context.Context, storeID, sessionID string) error {
	return errors.Wrap(r.cache.Client.Del(ctx, cartKey(storeID, sessionID)).Err(), "cart: delete")
}
