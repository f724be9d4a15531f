package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"doneapp/internal/core/port"
)

// CacheRepository is the in-process cache, the default when no Redis address
// is configured.
type CacheRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

func NewCacheRepository() port.CacheRepository {
	return &CacheRepository{
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (cr *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cr.cache.Set(key, value, ttl)
	return nil
}

func (cr *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := cr.cache.Get(key)

	if !found {
		return nil, fmt.Errorf("cache key %s not found", key)
	}

	bytes, ok := value.([]byte)

	if !ok {
		return nil, fmt.Errorf("cache key %s holds a non-byte value", key)
	}

	return bytes, nil
}

func (cr *CacheRepository) Delete(ctx context.Context, key string) error {
	cr.cache.Delete(key)
	return nil
}

// Increment bumps a counter key, creating it with the given ttl on first use.
// The lock keeps check-then-set callers from racing each other.
func (cr *CacheRepository) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if _, found := cr.cache.Get(key); !found {
		cr.cache.Set(key, int64(1), ttl)
		return 1, nil
	}

	return cr.cache.IncrementInt64(key, 1)
}

func (cr *CacheRepository) Close() error {
	cr.cache.Flush()
	return nil
}
