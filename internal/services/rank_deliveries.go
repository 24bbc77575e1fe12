package services

import (
	"cmp"
	"delivery-schedule-service/internal/domain"
	"slices"
)

// RankDeliveries orders deliveries longest first.
//
// The sort is stable: deliveries with equal TotalDuration keep their input order,
// which keeps repeated runs identical. The input slice is left untouched.
func RankDeliveries(deliveries []domain.Delivery) []domain.Delivery {
	ranked := slices.Clone(deliveries)

	slices.SortStableFunc(ranked, func(a, b domain.Delivery) int {
		return cmp.Compare(b.TotalDuration, a.TotalDuration)
	})

	return ranked
}
