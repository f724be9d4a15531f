package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"doneapp/internal/core/port"
)

// CacheRepository backs the cache port with Redis, for deployments that run
// more than one instance of the API.
type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(addr, password string, db int) (port.CacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &CacheRepository{client: client}, nil
}

func NewCacheRepositoryWithClient(client *redis.Client) port.CacheRepository {
	return &CacheRepository{client: client}
}

func (cr *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return cr.client.Set(ctx, key, value, ttl).Err()
}

func (cr *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := cr.client.Get(ctx, key).Bytes()

	if err == redis.Nil {
		return nil, fmt.Errorf("cache key %s not found", key)
	}

	if err != nil {
		return nil, err
	}

	return value, nil
}

func (cr *CacheRepository) Delete(ctx context.Context, key string) error {
	return cr.client.Del(ctx, key).Err()
}

// Increment bumps a counter key. The expiry is only attached when the key is
// created, so the window does not slide on every request.
func (cr *CacheRepository) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := cr.client.Incr(ctx, key).Result()

	if err != nil {
		return 0, err
	}

	if count == 1 {
		if err := cr.client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, err
		}
	}

	return count, nil
}

func (cr *CacheRepository) Close() error {
	return cr.client.Close()
}
