// Package codec holds the wire shapes shared by the schedule stores, caches
// and the HTTP API.
package codec

import (
	"delivery-schedule-service/internal/domain"
	"fmt"
)

// SlotRecord is one time slot in the downstream two-list format.
type SlotRecord struct {
	PlaneDeliveries []string `json:"planeDeliveries"`
	TruckDeliveries []string `json:"truckDeliveries"`
}

type PlacementRecord struct {
	DeliveryID string         `json:"delivery_id"`
	Step       int            `json:"step"`
	Vehicle    domain.Vehicle `json:"vehicle"`
	Start      int            `json:"start"`
	End        int            `json:"end"`
}

// ScheduleRecord is the full, restorable form of a schedule.
type ScheduleRecord struct {
	MaxPlanes  int               `json:"max_planes"`
	MaxTrucks  int               `json:"max_trucks"`
	Makespan   int               `json:"makespan"`
	Slots      []SlotRecord      `json:"slots"`
	Placements []PlacementRecord `json:"placements"`
}

// EncodeSlots converts the timeline into slot records. Empty classes are
// encoded as empty lists, never null.
func EncodeSlots(tl *domain.Timeline) []SlotRecord {
	out := make([]SlotRecord, 0, tl.Len())
	for _, slot := range tl.Slots() {
		out = append(out, SlotRecord{
			PlaneDeliveries: copyIDs(slot.Occupants(domain.Plane)),
			TruckDeliveries: copyIDs(slot.Occupants(domain.Truck)),
		})
	}
	return out
}

// DecodeSlots rebuilds a timeline from slot records.
func DecodeSlots(slots []SlotRecord) *domain.Timeline {
	tl := domain.NewTimeline()
	tl.Grow(len(slots))

	for i, s := range slots {
		for _, id := range s.PlaneDeliveries {
			tl.Assign(i, domain.Plane, id)
		}
		for _, id := range s.TruckDeliveries {
			tl.Assign(i, domain.Truck, id)
		}
	}
	return tl
}

func EncodePlacements(placements []domain.Placement) []PlacementRecord {
	out := make([]PlacementRecord, 0, len(placements))
	for _, p := range placements {
		out = append(out, PlacementRecord{
			DeliveryID: p.DeliveryID,
			Step:       p.Step,
			Vehicle:    p.Vehicle,
			Start:      p.Start,
			End:        p.End,
		})
	}
	return out
}

func EncodeSchedule(s *domain.Schedule) ScheduleRecord {
	return ScheduleRecord{
		MaxPlanes:  s.Capacity.MaxPlanes,
		MaxTrucks:  s.Capacity.MaxTrucks,
		Makespan:   s.Makespan(),
		Slots:      EncodeSlots(s.Timeline),
		Placements: EncodePlacements(s.Placements),
	}
}

// DecodeSchedule restores a schedule and checks the recorded makespan.
func DecodeSchedule(r ScheduleRecord) (*domain.Schedule, error) {
	if r.Makespan != len(r.Slots) {
		return nil, fmt.Errorf("decode schedule: makespan %d does not match %d slots", r.Makespan, len(r.Slots))
	}

	placements := make([]domain.Placement, 0, len(r.Placements))
	for _, p := range r.Placements {
		placements = append(placements, domain.Placement{
			DeliveryID: p.DeliveryID,
			Step:       p.Step,
			Vehicle:    p.Vehicle,
			Start:      p.Start,
			End:        p.End,
		})
	}

	return &domain.Schedule{
		Capacity: domain.Capacity{
			MaxPlanes: r.MaxPlanes,
			MaxTrucks: r.MaxTrucks,
		},
		Timeline:   DecodeSlots(r.Slots),
		Placements: placements,
	}, nil
}

func copyIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
