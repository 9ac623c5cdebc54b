package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ServerCache drops cached catalog rows that were changed outside the cached repository.
type ServerCache interface {
	Invalidate(ctx context.Context, gameID string, code string) error
}

type redisServerCache struct {
	redis *redis.Client
}

func (r *redisServerCache) Invalidate(ctx context.Context, gameID string, code string) error {
	if err := r.redis.Del(ctx, serverCacheKey(gameID, code)).Err(); err != nil {
		return fmt.Errorf("ServerCache.Invalidate: %w", err)
	}
	return nil
}

func NewServerCache(redis *redis.Client) ServerCache {
	return &redisServerCache{
		redis: redis,
	}
}
