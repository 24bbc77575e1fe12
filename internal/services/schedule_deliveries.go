package services

import (
	"delivery-schedule-service/internal/domain"
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
	"go.uber.org/multierr"
)

// ScheduleDeliveries places every step of every delivery on a shared timeline
// using a greedy longest-first, first-fit heuristic.
//
// Deliveries are ranked by RankDeliveries and processed one at a time. Each
// step starts at the first slot after the previous step of the same delivery
// where its vehicle class has room for the whole duration. When no existing
// slot qualifies the step is appended at the tail, so once the input is valid
// every step is placed. Placements are final; there is no backtracking.
// The makespan is the length of the resulting timeline.
func ScheduleDeliveries(deliveries []domain.Delivery, capacity domain.Capacity) (*domain.Schedule, error) {
	if err := ValidateBatch(deliveries, capacity); err != nil {
		return nil, err
	}

	schedule := &domain.Schedule{
		Capacity:   capacity,
		Timeline:   domain.NewTimeline(),
		Placements: make([]domain.Placement, 0, countSteps(deliveries)),
	}

	for _, delivery := range RankDeliveries(deliveries) {
		schedule.Placements = placeDelivery(schedule.Timeline, capacity, delivery, schedule.Placements)
	}

	return schedule, nil
}

// placeDelivery walks the steps in order. cursor is the last slot used by the
// previous step; the next step must start strictly after it.
func placeDelivery(
	tl *domain.Timeline,
	capacity domain.Capacity,
	delivery domain.Delivery,
	placements []domain.Placement,
) []domain.Placement {
	cursor := -1

	for i, step := range delivery.Steps {
		start := FindFirstFit(tl, step.Vehicle, step.Duration, capacity.Limit(step.Vehicle), cursor)

		if start == NoFit {
			start = tl.Len()
			tl.Append(step.Vehicle, delivery.ID, step.Duration)
		} else {
			for j := start; j < start+step.Duration; j++ {
				tl.Assign(j, step.Vehicle, delivery.ID)
			}
		}

		cursor = start + step.Duration - 1

		placements = append(placements, domain.Placement{
			DeliveryID: delivery.ID,
			Step:       i,
			Vehicle:    step.Vehicle,
			Start:      start,
			End:        cursor,
		})
	}

	return placements
}

// ValidateBatch rejects invalid capacity outright and otherwise reports every
// invalid or duplicated delivery at once. The summed step durations of the
// valid deliveries must stay within domain.MaxTimelineSlots.
func ValidateBatch(deliveries []domain.Delivery, capacity domain.Capacity) error {
	if err := capacity.Validate(); err != nil {
		return err
	}

	var errs error
	seen := make(map[string]struct{}, len(deliveries))
	slots := 0

	for _, d := range deliveries {
		if err := d.Validate(); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		if _, ok := seen[d.ID]; ok {
			errs = multierr.Append(errs, goerrors.ErrValidation{
				Caller: "ValidateBatch",
				Issue:  fmt.Errorf("delivery %q: %w", d.ID, domain.ErrDuplicateDelivery),
			})
			continue
		}
		seen[d.ID] = struct{}{}

		// steps are bounded by MaxStepDuration, the sum cannot wrap before the check
		if slots <= domain.MaxTimelineSlots {
			slots += d.StepsDuration()
		}
	}

	if slots > domain.MaxTimelineSlots {
		errs = multierr.Append(errs, goerrors.ErrValidation{
			Caller: "ValidateBatch",
			Issue: fmt.Errorf("batch spans more than %d slots: %w",
				domain.MaxTimelineSlots, domain.ErrInvalidLeg),
		})
	}

	return errs
}

func countSteps(deliveries []domain.Delivery) int {
	n := 0
	for _, d := range deliveries {
		n += len(d.Steps)
	}
	return n
}
