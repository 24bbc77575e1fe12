package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
)

// Cache of computed schedules keyed by an input fingerprint.
// Scheduling is deterministic, so a hit is identical to a recomputation.
type ScheduleCache interface {
	// Return the cached schedule and true, or nil and false on a miss.
	Get(ctx context.Context, key string) (*domain.Schedule, bool, error)
	Put(ctx context.Context, key string, schedule *domain.Schedule) error
}
