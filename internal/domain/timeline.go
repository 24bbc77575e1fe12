package domain

import "slices"

// TimeSlot is one discrete time unit. For every vehicle class it holds the
// ids of the deliveries using that class, in assignment order, without duplicates.
type TimeSlot struct {
	occupants [VehicleCount][]string
}

// NewTimeSlot returns a slot where id holds v and every other class is empty.
func NewTimeSlot(v Vehicle, id string) *TimeSlot {
	slot := &TimeSlot{}
	slot.add(v, id)
	return slot
}

func (s *TimeSlot) Occupants(v Vehicle) []string { return s.occupants[v] }

func (s *TimeSlot) Count(v Vehicle) int { return len(s.occupants[v]) }

func (s *TimeSlot) Has(v Vehicle, id string) bool {
	return slices.Contains(s.occupants[v], id)
}

// add inserts id under v unless it is already there.
func (s *TimeSlot) add(v Vehicle, id string) {
	if s.Has(v, id) {
		return
	}
	s.occupants[v] = append(s.occupants[v], id)
}

// Timeline is the resource ledger: a zero-based sequence of slots that only
// grows at the tail. Indices at or past Len are free for every class.
//
// A Timeline is not safe for concurrent use; a scheduling run owns it.
type Timeline struct {
	slots []*TimeSlot
}

func NewTimeline() *Timeline { return &Timeline{} }

func (t *Timeline) Len() int { return len(t.slots) }

// Slot returns the slot at i, or nil when i is outside the timeline.
func (t *Timeline) Slot(i int) *TimeSlot {
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	return t.slots[i]
}

// Count reports how many deliveries hold v at slot i.
func (t *Timeline) Count(i int, v Vehicle) int {
	if slot := t.Slot(i); slot != nil {
		return slot.Count(v)
	}
	return 0
}

func (t *Timeline) Occupants(i int, v Vehicle) []string {
	if slot := t.Slot(i); slot != nil {
		return slot.Occupants(v)
	}
	return nil
}

// Assign records id as holding v at slot i. Missing slots up to i are created
// empty first. Assigning an id that is already present is a no-op.
func (t *Timeline) Assign(i int, v Vehicle, id string) {
	if i < 0 {
		panic("timeline: negative slot index")
	}
	t.Grow(i + 1)
	t.slots[i].add(v, id)
}

// Grow extends the timeline with empty slots until it is length long.
func (t *Timeline) Grow(length int) {
	for len(t.slots) < length {
		t.slots = append(t.slots, &TimeSlot{})
	}
}

// Append adds n slots at the tail, each held by id under v only.
func (t *Timeline) Append(v Vehicle, id string, n int) {
	for range n {
		t.slots = append(t.slots, NewTimeSlot(v, id))
	}
}

// Slots exposes the slots for serialization. Callers must not modify them.
func (t *Timeline) Slots() []*TimeSlot { return t.slots }
