package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
)

// Contract for persisting a finished schedule.
type ScheduleStore interface {
	// Store the timeline and makespan of one run under runID.
	SaveSchedule(ctx context.Context, runID string, schedule *domain.Schedule) error
}
