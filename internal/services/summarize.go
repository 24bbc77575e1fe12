package services

import "delivery-schedule-service/internal/domain"

// VehicleUsage describes how one vehicle class was used over the timeline.
type VehicleUsage struct {
	Vehicle  domain.Vehicle
	Capacity int
	// BusySlots counts slot units held, one per delivery per slot.
	BusySlots int
	// Peak is the highest number of concurrent holders in any slot.
	Peak        int
	Utilization float64
}

type Summary struct {
	Makespan   int
	Deliveries int
	Steps      int
	Usage      []VehicleUsage
}

func Summarize(schedule *domain.Schedule) Summary {
	summary := Summary{
		Makespan: schedule.Makespan(),
		Steps:    len(schedule.Placements),
	}

	seen := make(map[string]struct{})
	for _, p := range schedule.Placements {
		seen[p.DeliveryID] = struct{}{}
	}
	summary.Deliveries = len(seen)

	for _, v := range domain.Vehicles {
		usage := VehicleUsage{Vehicle: v, Capacity: schedule.Capacity.Limit(v)}

		for _, slot := range schedule.Timeline.Slots() {
			n := slot.Count(v)
			usage.BusySlots += n
			usage.Peak = max(usage.Peak, n)
		}

		if total := summary.Makespan * usage.Capacity; total > 0 {
			usage.Utilization = float64(usage.BusySlots) / float64(total)
		}

		summary.Usage = append(summary.Usage, usage)
	}

	return summary
}
