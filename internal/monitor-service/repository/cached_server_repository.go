package repository

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cachedServerRepository is a read-through cache in front of the catalog for
// (game, code) lookups. Entries are dropped on update and otherwise expire
// after cacheTTL.
type cachedServerRepository struct {
	redis    *redis.Client
	repo     ServerRepository
	cacheTTL time.Duration
}

func serverCacheKey(gameID string, code string) string {
	return fmt.Sprintf("health:server:%s:%s", gameID, code)
}

func (c *cachedServerRepository) GetServerByCode(ctx context.Context, gameID string, code string) (model.Server, error) {
	key := serverCacheKey(gameID, code)
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var server model.Server
		if e := json.Unmarshal(data, &server); e == nil {
			return server, nil
		}
	}
	// miss, stale encoding or cache outage: read the catalog

	server, err := c.repo.GetServerByCode(ctx, gameID, code)
	if err != nil {
		return server, fmt.Errorf("cachedServerRepository.GetServerByCode: %w", err)
	}
	if payload, e := json.Marshal(server); e == nil {
		c.redis.Set(ctx, key, string(payload), c.cacheTTL)
	}
	return server, nil
}

func (c *cachedServerRepository) GetServersByGame(ctx context.Context, gameID string) ([]model.Server, error) {
	return c.repo.GetServersByGame(ctx, gameID)
}

func (c *cachedServerRepository) CreateServer(ctx context.Context, server model.Server) (model.Server, error) {
	return c.repo.CreateServer(ctx, server)
}

func (c *cachedServerRepository) UpdateServer(ctx context.Context, serverID string, changes map[string]interface{}) (model.Server, error) {
	server, err := c.repo.UpdateServer(ctx, serverID, changes)
	if err != nil {
		return server, fmt.Errorf("cachedServerRepository.UpdateServer: %w", err)
	}
	if err = c.redis.Del(ctx, serverCacheKey(server.GameID, server.Code)).Err(); err != nil {
		return server, fmt.Errorf("cachedServerRepository.UpdateServer: %w", err)
	}
	return server, nil
}

func NewCachedServerRepository(redis *redis.Client, repo ServerRepository, cacheTTL time.Duration) ServerRepository {
	return &cachedServerRepository{
		redis:    redis,
		repo:     repo,
		cacheTTL: cacheTTL,
	}
}
