package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchRun is one independent scheduling input.
type BatchRun struct {
	Deliveries []domain.Delivery
	Capacity   domain.Capacity
}

// ScheduleBatches schedules independent runs concurrently, at most limit at a
// time (limit <= 0 means unbounded). Each run owns its own timeline, so the
// result of a run does not depend on the others. Results keep input order.
// The first failing run cancels the runs not yet started.
func ScheduleBatches(ctx context.Context, runs []BatchRun, limit int) ([]*domain.Schedule, error) {
	results := make([]*domain.Schedule, len(runs))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, run := range runs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			schedule, err := ScheduleDeliveries(run.Deliveries, run.Capacity)
			if err != nil {
				return fmt.Errorf("schedule batches: run %d: %w", i, err)
			}

			results[i] = schedule
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
