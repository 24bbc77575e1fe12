package domain

// Placement records the slot range [Start, End] one step was given.
type Placement struct {
	DeliveryID string
	Step       int
	Vehicle    Vehicle
	Start      int
	End        int
}

func (p Placement) Duration() int { return p.End - p.Start + 1 }

// Schedule is the finished output of a scheduling run. It is not mutated
// after the scheduler hands it over.
type Schedule struct {
	Capacity   Capacity
	Timeline   *Timeline
	Placements []Placement
}

// Makespan is the length of the timeline.
func (s *Schedule) Makespan() int {
	if s == nil || s.Timeline == nil {
		return 0
	}
	return s.Timeline.Len()
}
