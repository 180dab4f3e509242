package dropdown

import (
	"context"
	"errors"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/db"
)

// RedisCache shares option lists across BFF replicas.
type RedisCache struct {
	redis *db.RedisDB
}

func NewRedisCache(r *db.RedisDB) *RedisCache {
	return &RedisCache{redis: r}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]Option, bool, error) {
	var opts []Option
	err := c.redis.GetCache(ctx, key, &opts)
	if errors.Is(err, db.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return opts, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, opts []Option, ttl time.Duration) error {
	return c.redis.SetCache(ctx, key, opts, ttl)
}

func (c *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	return c.redis.InvalidateCache(ctx, prefix+"*")
}
