package domain

import (
	"encoding/json"
	"errors"
	"testing"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/stretchr/testify/require"
)

func requireValidationIssue(t *testing.T, err error, target error) {
	t.Helper()

	var errValidation goerrors.ErrValidation
	require.ErrorAs(t, err, &errValidation)
	require.True(t,
		errors.Is(errValidation.Issue, target),
		"issue %v does not wrap %v", errValidation.Issue, target,
	)
}

func TestVehicleText(t *testing.T) {
	for _, v := range Vehicles {
		text, err := v.MarshalText()
		require.NoError(t, err)

		var parsed Vehicle
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, v, parsed)
	}

	_, errParse := ParseVehicle("boat")
	require.ErrorIs(t, errParse, ErrInvalidLeg)

	_, errMarshal := VehicleCount.MarshalText()
	require.ErrorIs(t, errMarshal, ErrInvalidLeg)
	require.Equal(t, "vehicle(2)", VehicleCount.String())
}

func TestStepJSON(t *testing.T) {
	type wire struct {
		Vehicle  Vehicle `json:"vehicle"`
		Duration int     `json:"duration"`
	}

	var w wire
	require.NoError(t, json.Unmarshal([]byte(`{"vehicle":"truck","duration":3}`), &w))
	require.Equal(t, Truck, w.Vehicle)

	require.Error(t, json.Unmarshal([]byte(`{"vehicle":"ship","duration":3}`), &w))
}

func TestNewDelivery(t *testing.T) {
	d := NewDelivery("5",
		Step{Vehicle: Truck, Duration: 30},
		Step{Vehicle: Plane, Duration: 60},
		Step{Vehicle: Truck, Duration: 30},
	)

	require.Equal(t, 120, d.TotalDuration)
	require.Equal(t, 120, d.StepsDuration())
	require.NoError(t, d.Validate())
}

func TestDeliveryValidate(t *testing.T) {
	tests := []struct {
		name     string
		delivery Delivery
		issue    error
	}{
		{
			name:     "1. empty id",
			delivery: NewDelivery(" ", Step{Vehicle: Plane, Duration: 1}),
			issue:    ErrEmptyDeliveryID,
		},
		{
			name:     "2. zero duration",
			delivery: NewDelivery("A", Step{Vehicle: Plane, Duration: 0}),
			issue:    ErrInvalidLeg,
		},
		{
			name:     "3. negative duration",
			delivery: NewDelivery("A", Step{Vehicle: Truck, Duration: 2}, Step{Vehicle: Truck, Duration: -1}),
			issue:    ErrInvalidLeg,
		},
		{
			name:     "4. unknown vehicle",
			delivery: NewDelivery("A", Step{Vehicle: Vehicle(7), Duration: 1}),
			issue:    ErrInvalidLeg,
		},
		{
			name:     "5. duration above the step limit",
			delivery: NewDelivery("A", Step{Vehicle: Truck, Duration: MaxStepDuration + 1}),
			issue:    ErrInvalidLeg,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name,
			func(t *testing.T) {
				requireValidationIssue(t, tt.delivery.Validate(), tt.issue)
			},
		)
	}

	t.Run(
		"6. step at the limit is valid",
		func(t *testing.T) {
			require.NoError(t, NewDelivery("A", Step{Vehicle: Plane, Duration: MaxStepDuration}).Validate())
		},
	)

	t.Run(
		"7. no steps is valid",
		func(t *testing.T) {
			d := NewDelivery("empty")

			require.NoError(t, d.Validate())
			require.Zero(t, d.TotalDuration)
		},
	)
}

func TestCapacity(t *testing.T) {
	c := Capacity{MaxPlanes: 2, MaxTrucks: 3}

	require.NoError(t, c.Validate())
	require.Equal(t, 2, c.Limit(Plane))
	require.Equal(t, 3, c.Limit(Truck))
	require.Zero(t, c.Limit(VehicleCount))

	requireValidationIssue(t, Capacity{MaxPlanes: 0, MaxTrucks: 1}.Validate(), ErrInvalidCapacity)
	requireValidationIssue(t, Capacity{MaxPlanes: 1, MaxTrucks: -4}.Validate(), ErrInvalidCapacity)
}
