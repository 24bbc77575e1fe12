package codec

import "delivery-schedule-service/internal/domain"

type StepRecord struct {
	Vehicle  domain.Vehicle `json:"vehicle"`
	Duration int            `json:"duration"`
}

// DeliveryRecord is the file and seed form of a delivery.
// totalDuration is accepted as an alias of total_duration for older files;
// when neither is set the total is derived from the steps.
type DeliveryRecord struct {
	ID                 string       `json:"id"`
	TotalDuration      int          `json:"total_duration,omitempty"`
	TotalDurationCamel int          `json:"totalDuration,omitempty"`
	Steps              []StepRecord `json:"steps"`
}

// Total returns the declared total, preferring total_duration.
func (r DeliveryRecord) Total() int {
	if r.TotalDuration != 0 {
		return r.TotalDuration
	}
	return r.TotalDurationCamel
}

func DecodeDelivery(r DeliveryRecord) domain.Delivery {
	steps := make([]domain.Step, 0, len(r.Steps))
	for _, s := range r.Steps {
		steps = append(steps, domain.Step{Vehicle: s.Vehicle, Duration: s.Duration})
	}

	d := domain.NewDelivery(r.ID, steps...)
	if total := r.Total(); total != 0 {
		d.TotalDuration = total
	}
	return d
}

func DecodeDeliveries(records []DeliveryRecord) []domain.Delivery {
	out := make([]domain.Delivery, 0, len(records))
	for _, r := range records {
		out = append(out, DecodeDelivery(r))
	}
	return out
}

func EncodeDelivery(d domain.Delivery) DeliveryRecord {
	steps := make([]StepRecord, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, StepRecord{Vehicle: s.Vehicle, Duration: s.Duration})
	}

	return DeliveryRecord{
		ID:            d.ID,
		TotalDuration: d.TotalDuration,
		Steps:         steps,
	}
}
