package services

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/ports"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanScheduleRequest struct {
	Capacity domain.Capacity
	// Deliveries to schedule. When nil the repository is used instead.
	Deliveries []domain.Delivery
	// Persist saves the result through the schedule store.
	Persist bool
}

type PlanScheduleResult struct {
	RunID       string
	Fingerprint string
	Cached      bool
	Deliveries  []domain.Delivery
	Schedule    *domain.Schedule
}

// PlanSchedule loads the batch, reuses a cached schedule when the same input
// was scheduled before, and otherwise runs ScheduleDeliveries.
//
// cache and store are optional. Cache failures are logged and treated as a
// miss; a failed save is returned to the caller.
func PlanSchedule(
	ctx context.Context,
	req PlanScheduleRequest,
	repo ports.DeliveryRepository,
	store ports.ScheduleStore,
	cache ports.ScheduleCache,
) (_ *PlanScheduleResult, err error) {
	defer obs.Time(ctx, "services.PlanSchedule")(&err)

	deliveries := req.Deliveries
	source := "request"

	if deliveries == nil {
		if repo == nil {
			return nil, errors.New("plan schedule: no deliveries and no repository")
		}

		deliveries, err = repo.ListDeliveries(ctx)
		if err != nil {
			return nil, fmt.Errorf("plan schedule: list deliveries: %w", err)
		}
		source = "repository"
	}

	result := &PlanScheduleResult{
		RunID:       uuid.NewString(),
		Fingerprint: Fingerprint(deliveries, req.Capacity),
		Deliveries:  deliveries,
	}

	if cache != nil {
		cached, ok, errGet := cache.Get(ctx, result.Fingerprint)
		switch {
		case errGet != nil:
			obs.ScheduleCacheRequests.WithLabelValues("error").Inc()
			zap.L().Warn("schedule cache get failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("key", result.Fingerprint),
				zap.Error(errGet),
			)
		case ok:
			obs.ScheduleCacheRequests.WithLabelValues("hit").Inc()
			result.Schedule = cached
			result.Cached = true
		default:
			obs.ScheduleCacheRequests.WithLabelValues("miss").Inc()
		}
	}

	if result.Schedule == nil {
		result.Schedule, err = ScheduleDeliveries(deliveries, req.Capacity)
		if err != nil {
			return nil, fmt.Errorf("plan schedule: %w", err)
		}

		obs.ScheduleRuns.WithLabelValues(source).Inc()
		obs.ScheduleMakespan.Observe(float64(result.Schedule.Makespan()))

		if cache != nil {
			if errPut := cache.Put(ctx, result.Fingerprint, result.Schedule); errPut != nil {
				zap.L().Warn("schedule cache put failed",
					zap.String("req_id", obs.RequestID(ctx)),
					zap.String("key", result.Fingerprint),
					zap.Error(errPut),
				)
			}
		}
	}

	if req.Persist {
		if store == nil {
			return nil, errors.New("plan schedule: persist requested without a schedule store")
		}

		if err := store.SaveSchedule(ctx, result.RunID, result.Schedule); err != nil {
			return nil, fmt.Errorf("plan schedule: save run %s: %w", result.RunID, err)
		}
	}

	zap.L().Info("schedule planned",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("run_id", result.RunID),
		zap.String("source", source),
		zap.Int("deliveries", len(deliveries)),
		zap.Int("makespan", result.Schedule.Makespan()),
		zap.Bool("cached", result.Cached),
	)

	return result, nil
}
