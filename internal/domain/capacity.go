package domain

import (
	"fmt"

	goerrors "github.com/TudorHulban/go-errors"
)

// Capacity bounds how many deliveries may hold each vehicle class in one time slot.
// It is fixed for a whole scheduling run.
type Capacity struct {
	MaxPlanes int
	MaxTrucks int
}

// Limit returns the capacity configured for v, or zero for an unknown class.
func (c Capacity) Limit(v Vehicle) int {
	switch v {
	case Plane:
		return c.MaxPlanes
	case Truck:
		return c.MaxTrucks
	}
	return 0
}

func (c Capacity) Validate() error {
	for _, v := range Vehicles {
		if limit := c.Limit(v); limit <= 0 {
			return goerrors.ErrValidation{
				Caller: "Validate - Capacity",
				Issue:  fmt.Errorf("max %ss = %d: %w", v, limit, ErrInvalidCapacity),
			}
		}
	}
	return nil
}
