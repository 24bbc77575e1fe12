package cache

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUScheduleCache keeps recently computed schedules in process memory.
// Cached schedules are shared, callers must treat them as read-only.
type LRUScheduleCache struct {
	entries *lru.Cache[string, *domain.Schedule]
}

func NewLRUScheduleCache(size int) (*LRUScheduleCache, error) {
	entries, err := lru.New[string, *domain.Schedule](size)
	if err != nil {
		return nil, fmt.Errorf("new lru schedule cache: size=%d: %w", size, err)
	}

	return &LRUScheduleCache{entries: entries}, nil
}

func (c *LRUScheduleCache) Get(_ context.Context, key string) (*domain.Schedule, bool, error) {
	schedule, ok := c.entries.Get(key)
	return schedule, ok, nil
}

func (c *LRUScheduleCache) Put(_ context.Context, key string, schedule *domain.Schedule) error {
	if schedule == nil {
		return errors.New("lru schedule cache: schedule is nil")
	}

	c.entries.Add(key, schedule)
	return nil
}

func (c *LRUScheduleCache) Len() int { return c.entries.Len() }
