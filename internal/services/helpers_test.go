package services

import (
	"delivery-schedule-service/internal/domain"
	"math/rand/v2"
	"strconv"
)

func plane(d int) domain.Step { return domain.Step{Vehicle: domain.Plane, Duration: d} }

func truck(d int) domain.Step { return domain.Step{Vehicle: domain.Truck, Duration: d} }

// sampleDeliveries is the reference batch shipped in data/seeds/deliveries.json.
func sampleDeliveries() []domain.Delivery {
	return []domain.Delivery{
		domain.NewDelivery("1", plane(25)),
		domain.NewDelivery("2", truck(20), plane(20), truck(5)),
		domain.NewDelivery("3", plane(50), truck(10)),
		domain.NewDelivery("4", truck(10)),
		domain.NewDelivery("5", truck(30), plane(60), truck(30)),
	}
}

func randomDeliveries(rng *rand.Rand, n int) []domain.Delivery {
	out := make([]domain.Delivery, 0, n)

	for i := range n {
		steps := make([]domain.Step, rng.IntN(4))
		for j := range steps {
			steps[j] = domain.Step{
				Vehicle:  domain.Vehicles[rng.IntN(int(domain.VehicleCount))],
				Duration: 1 + rng.IntN(12),
			}
		}
		out = append(out, domain.NewDelivery("d"+strconv.Itoa(i), steps...))
	}

	return out
}

// occupied returns the slot indices where id holds v.
func occupied(tl *domain.Timeline, v domain.Vehicle, id string) []int {
	var out []int
	for i, slot := range tl.Slots() {
		if slot.Has(v, id) {
			out = append(out, i)
		}
	}
	return out
}
