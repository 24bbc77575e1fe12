package services

import "delivery-schedule-service/internal/domain"

// NoFit is returned by FindFirstFit when no existing slot can start the step.
const NoFit = -1

// FindFirstFit returns the earliest slot index start > after from which
// duration consecutive slots all have room for one more holder of v.
//
// Only indices inside the timeline are considered as starts, but the run may
// extend past the end: slots beyond Len are free. Pass after = -1 for no
// lower bound. The scan is first fit, not best fit.
func FindFirstFit(tl *domain.Timeline, v domain.Vehicle, duration, limit, after int) int {
	for start := max(after+1, 0); start < tl.Len(); start++ {
		if hasRoom(tl, v, start, duration, limit) {
			return start
		}
	}

	return NoFit
}

func hasRoom(tl *domain.Timeline, v domain.Vehicle, start, duration, limit int) bool {
	// Slots at or past Len are free, only the part inside the timeline can block.
	end := min(start+duration, tl.Len())
	for j := start; j < end; j++ {
		if tl.Count(j, v) >= limit {
			return false
		}
	}

	return true
}
