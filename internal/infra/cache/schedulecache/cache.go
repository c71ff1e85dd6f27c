// Package schedulecache is a Redis read-through cache in front of the schedule provider.
// Redis failures never fail a request: reads fall through to the provider.
package schedulecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const (
	keyPrefix  = "court-booking:schedule:"
	scanCount  = 100
	defaultTTL = 5 * time.Minute
)

// Cache кэширует действующую конфигурацию по корту
type Cache struct {
	client redis.Cmdable
	next   Provider
	ttl    time.Duration
	logger Logger
}

// New создает кэш. ttl <= 0 - значение по умолчанию.
func New(client redis.Cmdable, next Provider, ttl time.Duration, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, next: next, ttl: ttl, logger: logger}
}

// GetForCourt отдает конфигурацию из кэша или из провайдера
func (c *Cache) GetForCourt(ctx context.Context, courtID int64) (*domain.ScheduleConfig, error) {
	key := Key(courtID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var cfg domain.ScheduleConfig
		if err := json.Unmarshal(data, &cfg); err == nil {
			return &cfg, nil
		}
		c.logger.Warn("ScheduleCache: corrupted entry %s dropped", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("ScheduleCache: get %s failed: %v", key, err)
	}

	cfg, err := c.next.GetForCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(cfg); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("ScheduleCache: set %s failed: %v", key, err)
		}
	}
	return cfg, nil
}

// Update сохраняет конфигурацию и сбрасывает затронутые записи.
// Глобальная конфигурация влияет на все корты, поэтому сбрасывается весь префикс.
func (c *Cache) Update(ctx context.Context, cfg *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	saved, err := c.next.Update(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if saved.CourtID != nil {
		err = c.client.Del(ctx, Key(*saved.CourtID)).Err()
	} else {
		err = c.invalidateAll(ctx)
	}
	if err != nil {
		c.logger.Warn("ScheduleCache: invalidation failed: %v", err)
	}
	return saved, nil
}

func (c *Cache) invalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", scanCount).Result()
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Key ключ записи корта. courtID = 0 - глобальная конфигурация.
func Key(courtID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, courtID)
}
