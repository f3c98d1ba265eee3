package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-gin-event-lookup/internal/model"
	apperrors "go-gin-event-lookup/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

type EventCache interface {
	// 讀取：未命中時回傳 apperrors.ErrCacheMiss
	Get(ctx context.Context, slug string) (*model.Event, error)
	// 寫入：以 slug 為 key 存放活動 JSON
	Set(ctx context.Context, event *model.Event) error
	// 失效：寫入活動後清除舊的 slug
	Invalidate(ctx context.Context, slugs ...string) error
}

type RedisEventCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventCache(client *redis.Client, ttl time.Duration) EventCache {
	return &RedisEventCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

// 活動 key
func (c *RedisEventCacheImpl) getEventKey(slug string) string {
	return fmt.Sprintf("event:slug:%s", slug)
}

func (c *RedisEventCacheImpl) Get(ctx context.Context, slug string) (*model.Event, error) {
	data, err := c.client.Get(ctx, c.getEventKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var event model.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("invalid cached event: %w", err)
	}
	return &event, nil
}

func (c *RedisEventCacheImpl) Set(ctx context.Context, event *model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.getEventKey(event.Slug), data, c.ttl).Err()
}

func (c *RedisEventCacheImpl) Invalidate(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, c.getEventKey(slug))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NopEventCache 未設定 Redis 時使用，永遠未命中
type NopEventCache struct{}

func NewNopEventCache() EventCache {
	return NopEventCache{}
}

func (NopEventCache) Get(context.Context, string) (*model.Event, error) {
	return nil, apperrors.ErrCacheMiss
}

func (NopEventCache) Set(context.Context, *model.Event) error {
	return nil
}

func (NopEventCache) Invalidate(context.Context, ...string) error {
	return nil
}
