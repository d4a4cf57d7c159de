package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLocker - одноразовая блокировка на срок напоминания через SETNX.
// Ключ не освобождается: он должен пережить все реплики, которые попробуют поднять тот же срок.
type RedisLocker struct {
	redisClient *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{redisClient: client}
}

func (l *RedisLocker) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if l.redisClient == nil {
		return false, errors.New("redis client not initialized")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return l.redisClient.SetNX(ctx, key, uuid.NewString(), ttl).Result()
}
