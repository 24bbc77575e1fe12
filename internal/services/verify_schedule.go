package services

import (
	"delivery-schedule-service/internal/domain"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var ErrInvariantViolated = errors.New("schedule invariant violated")

// VerifySchedule checks a finished schedule against the deliveries it was
// built from and reports every violation found:
//   - no slot holds more deliveries of a class than its capacity,
//   - each step occupies exactly Duration consecutive slots of its class,
//   - steps of one delivery do not overlap and keep their order,
//   - the makespan is at least the longest delivery.
func VerifySchedule(schedule *domain.Schedule, deliveries []domain.Delivery) error {
	if schedule == nil || schedule.Timeline == nil {
		return fmt.Errorf("verify schedule: nil schedule: %w", ErrInvariantViolated)
	}

	var errs error
	tl := schedule.Timeline

	for i, slot := range tl.Slots() {
		for _, v := range domain.Vehicles {
			if n, limit := slot.Count(v), schedule.Capacity.Limit(v); n > limit {
				errs = multierr.Append(errs, violation("slot %d holds %d %ss, capacity %d", i, n, v, limit))
			}
		}
	}

	byDelivery := make(map[string][]domain.Placement, len(deliveries))
	for _, p := range schedule.Placements {
		byDelivery[p.DeliveryID] = append(byDelivery[p.DeliveryID], p)
	}

	longest := 0
	for _, d := range deliveries {
		longest = max(longest, d.StepsDuration())
		errs = multierr.Append(errs, verifyDelivery(tl, d, byDelivery[d.ID]))
	}

	if tl.Len() < longest {
		errs = multierr.Append(errs, violation("makespan %d below longest delivery %d", tl.Len(), longest))
	}

	return errs
}

func verifyDelivery(tl *domain.Timeline, d domain.Delivery, placements []domain.Placement) error {
	if len(placements) != len(d.Steps) {
		return violation("delivery %q has %d placements for %d steps", d.ID, len(placements), len(d.Steps))
	}

	var errs error
	for i, p := range placements {
		step := d.Steps[i]

		if p.Step != i || p.Vehicle != step.Vehicle || p.Duration() != step.Duration {
			errs = multierr.Append(errs, violation("delivery %q step %d placed as %+v", d.ID, i, p))
			continue
		}

		for j := p.Start; j <= p.End; j++ {
			if slot := tl.Slot(j); slot == nil || !slot.Has(step.Vehicle, d.ID) {
				errs = multierr.Append(errs, violation("delivery %q step %d missing from slot %d", d.ID, i, j))
			}
		}

		if i > 0 && placements[i-1].End >= p.Start {
			errs = multierr.Append(errs, violation("delivery %q step %d starts at %d before step %d ends at %d",
				d.ID, i, p.Start, i-1, placements[i-1].End))
		}
	}

	return errs
}

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolated, fmt.Sprintf(format, args...))
}
