package domain

import (
	"fmt"
	"strings"

	goerrors "github.com/TudorHulban/go-errors"
)

const (
	// MaxStepDuration bounds a single step, in time slots.
	MaxStepDuration = 1 << 16

	// MaxTimelineSlots bounds the summed step durations of one batch, which
	// is also the largest makespan a batch can reach.
	MaxTimelineSlots = 1 << 20
)

// Step is one leg of a delivery: a vehicle class held for Duration time units.
type Step struct {
	Vehicle  Vehicle
	Duration int
}

func (s Step) Validate() error {
	if !s.Vehicle.Valid() {
		return fmt.Errorf("unknown vehicle %d: %w", uint8(s.Vehicle), ErrInvalidLeg)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%s step duration must be > 0 (got %d): %w", s.Vehicle, s.Duration, ErrInvalidLeg)
	}
	if s.Duration > MaxStepDuration {
		return fmt.Errorf("%s step duration must be <= %d (got %d): %w", s.Vehicle, MaxStepDuration, s.Duration, ErrInvalidLeg)
	}
	return nil
}

// Delivery is an ordered list of steps executed one after another.
// TotalDuration is only used to rank deliveries before scheduling.
type Delivery struct {
	ID            string
	TotalDuration int
	Steps         []Step
}

// NewDelivery derives TotalDuration from the steps.
func NewDelivery(id string, steps ...Step) Delivery {
	d := Delivery{ID: id, Steps: steps}
	d.TotalDuration = d.StepsDuration()
	return d
}

// StepsDuration is the sum of all step durations, a lower bound on the
// number of slots the delivery spans.
func (d Delivery) StepsDuration() int {
	total := 0
	for _, s := range d.Steps {
		total += s.Duration
	}
	return total
}

// Validate checks the id and every step. A delivery without steps is valid.
func (d Delivery) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return goerrors.ErrValidation{
			Caller: "Validate - Delivery",
			Issue:  ErrEmptyDeliveryID,
		}
	}

	for i, s := range d.Steps {
		if err := s.Validate(); err != nil {
			return goerrors.ErrValidation{
				Caller: "Validate - Delivery",
				Issue:  fmt.Errorf("delivery %q step %d: %w", d.ID, i, err),
			}
		}
	}

	return nil
}
