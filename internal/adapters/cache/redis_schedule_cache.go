package cache

import (
	"context"
	"delivery-schedule-service/internal/adapters/codec"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisScheduleCache stores encoded schedules in Redis so that several
// server instances share computed results.
type RedisScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScheduleCache parses a redis:// URL. A zero ttl keeps entries
// until Redis evicts them.
func NewRedisScheduleCache(redisURL string, ttl time.Duration) (*RedisScheduleCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("new redis schedule cache: parse url: %w", err)
	}

	return NewRedisScheduleCacheFromClient(redis.NewClient(opts), ttl), nil
}

func NewRedisScheduleCacheFromClient(client *redis.Client, ttl time.Duration) *RedisScheduleCache {
	return &RedisScheduleCache{client: client, ttl: ttl}
}

func (c *RedisScheduleCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis schedule cache: ping: %w", err)
	}
	return nil
}

func (c *RedisScheduleCache) Get(ctx context.Context, key string) (_ *domain.Schedule, _ bool, err error) {
	defer obs.Time(ctx, "schedule.cache.redis.Get")(&err)

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get schedule cache key=%q: %w", key, err)
	}

	var record codec.ScheduleRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, false, fmt.Errorf("get schedule cache key=%q: decode json: %w", key, err)
	}

	schedule, err := codec.DecodeSchedule(record)
	if err != nil {
		return nil, false, fmt.Errorf("get schedule cache key=%q: %w", key, err)
	}

	return schedule, true, nil
}

func (c *RedisScheduleCache) Put(ctx context.Context, key string, schedule *domain.Schedule) (err error) {
	defer obs.Time(ctx, "schedule.cache.redis.Put")(&err)

	if schedule == nil {
		return errors.New("put schedule cache: schedule is nil")
	}

	payload, err := json.Marshal(codec.EncodeSchedule(schedule))
	if err != nil {
		return fmt.Errorf("put schedule cache key=%q: encode json: %w", key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("put schedule cache key=%q: %w", key, err)
	}

	return nil
}

func (c *RedisScheduleCache) Close() error { return c.client.Close() }
