package domain

import "fmt"

// Vehicle is the resource pool a delivery step consumes.
// The set is closed: every capacity and occupancy lookup is indexed by it.
type Vehicle uint8

const (
	Plane Vehicle = iota
	Truck

	// VehicleCount is the number of vehicle classes; keep it last.
	VehicleCount
)

// Vehicles lists every vehicle class in index order.
var Vehicles = [VehicleCount]Vehicle{Plane, Truck}

var vehicleNames = [VehicleCount]string{
	Plane: "plane",
	Truck: "truck",
}

func (v Vehicle) Valid() bool { return v < VehicleCount }

func (v Vehicle) String() string {
	if !v.Valid() {
		return fmt.Sprintf("vehicle(%d)", uint8(v))
	}
	return vehicleNames[v]
}

// ParseVehicle maps "plane" / "truck" to a Vehicle.
func ParseVehicle(s string) (Vehicle, error) {
	for i, name := range vehicleNames {
		if s == name {
			return Vehicle(i), nil
		}
	}
	return 0, fmt.Errorf("parse vehicle: unknown vehicle %q: %w", s, ErrInvalidLeg)
}

func (v Vehicle) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("marshal vehicle: unknown vehicle %d: %w", uint8(v), ErrInvalidLeg)
	}
	return []byte(vehicleNames[v]), nil
}

func (v *Vehicle) UnmarshalText(text []byte) error {
	parsed, err := ParseVehicle(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
