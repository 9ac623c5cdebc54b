package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SyncLockRepository interface {
	// TryLock takes the named lock for ttl. ok is false when another holder owns it.
	// The returned release func is a no-op when ok is false.
	TryLock(ctx context.Context, name string, ttl time.Duration) (release func(ctx context.Context) error, ok bool, err error)
}

const releaseLockScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type redisSyncLockRepository struct {
	redis    *redis.Client
	newToken func() string
}

func syncLockKey(name string) string {
	return fmt.Sprintf("health:sync-lock:%s", name)
}

func (r *redisSyncLockRepository) TryLock(ctx context.Context, name string, ttl time.Duration) (func(ctx context.Context) error, bool, error) {
	key := syncLockKey(name)
	token := r.newToken()
	ok, err := r.redis.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return noopRelease, false, fmt.Errorf("SyncLockRepository.TryLock: %w", err)
	}
	if !ok {
		return noopRelease, false, nil
	}
	release := func(ctx context.Context) error {
		if e := r.redis.Eval(ctx, releaseLockScript, []string{key}, token).Err(); e != nil {
			return fmt.Errorf("SyncLockRepository.release: %w", e)
		}
		return nil
	}
	return release, true, nil
}

func noopRelease(context.Context) error {
	return nil
}

func NewSyncLockRepository(redis *redis.Client) SyncLockRepository {
	return &redisSyncLockRepository{
		redis:    redis,
		newToken: uuid.NewString,
	}
}
