package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis: ping %s", cfg.Addr)
	}
	return &RedisClient{Client: client}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{Client: client}
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}

// releaseScript deletes the lock only when it is still held by the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (c *RedisClient) AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := c.Client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, errors.Wrapf(err, "redis: acquire lock %s", key)
	}
	return ok, nil
}

func (c *RedisClient) ReleaseLock(ctx context.Context, key, value string) error {
	if err := releaseScript.Run(ctx, c.Client, []string{key}, value).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrapf(err, "redis: release lock %s", key)
	}
	return nil
}

// DeleteByPattern removes every key matching pattern using SCAN.
func (c *RedisClient) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := c.Client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrapf(err, "redis: scan %s", pattern)
	}
	if len(keys) == 0 {
		return nil
	}
	return errors.Wrap(c.Client.Del(ctx, keys...).Err(), "redis: delete keys")
}
