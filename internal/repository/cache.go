package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/raynet_coordinator/internal/models"
	"github.com/shenikar/raynet_coordinator/internal/service"
)

const (
	defaultCacheTTL   = 5 * time.Minute
	defaultCacheGuard = 10 * time.Second
	cacheTombstone    = "invalidated"
)

// cacheClient - команды Redis, которые использует кэш
type cacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// EventCache кэширует документы событий в Redis. Ростер в кэш не попадает.
// Инвалидация оставляет на guard метку-надгробие, и SetEvent (SET NX) не может
// вернуть в кэш документ, прочитанный из БД до записи. guard должен быть больше
// таймаута операции хранилища.
type EventCache struct {
	client cacheClient
	ttl    time.Duration
	guard  time.Duration
}

func NewEventCache(client *redis.Client, ttl, guard time.Duration) service.EventCache {
	return newEventCache(client, ttl, guard)
}

func newEventCache(client cacheClient, ttl, guard time.Duration) *EventCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if guard <= 0 {
		guard = defaultCacheGuard
	}
	return &EventCache{client: client, ttl: ttl, guard: guard}
}

func eventCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("event:%s", id.String())
}

// GetEvent пытается получить событие из Redis; промах и надгробие - (nil, nil)
func (c *EventCache) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	val, err := c.client.Get(ctx, eventCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event from cache: %w", err)
	}
	if string(val) == cacheTombstone {
		return nil, nil
	}

	event := &models.Event{}
	if err := json.Unmarshal(val, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event from cache: %w", err)
	}
	return event, nil
}

// SetEvent кладет событие на время TTL, только если ключ пуст
func (c *EventCache) SetEvent(ctx context.Context, event *models.Event) error {
	doc := *event
	doc.Operators = nil
	val, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal event for cache: %w", err)
	}
	if err := c.client.SetNX(ctx, eventCacheKey(event.ID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set event in cache: %w", err)
	}
	return nil
}

// DeleteEvent заменяет запись надгробием на время guard
func (c *EventCache) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Set(ctx, eventCacheKey(id), cacheTombstone, c.guard).Err(); err != nil {
		return fmt.Errorf("failed to invalidate event cache: %w", err)
	}
	return nil
}
