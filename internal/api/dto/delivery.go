package dto

type StepRequest struct {
	Vehicle  string `json:"vehicle" valid:"required,in(plane|truck)"`
	Duration int    `json:"duration"`
}

// DeliveryRequest accepts totalDuration as an alias of total_duration.
type DeliveryRequest struct {
	ID                 string        `json:"id" valid:"required"`
	TotalDuration      int           `json:"total_duration"`
	TotalDurationCamel int           `json:"totalDuration"`
	Steps              []StepRequest `json:"steps"`
}

type StepResponse struct {
	Vehicle  string `json:"vehicle"`
	Duration int    `json:"duration"`
}

type DeliveryResponse struct {
	ID            string         `json:"id"`
	TotalDuration int            `json:"total_duration"`
	Steps         []StepResponse `json:"steps"`
}

type ListDeliveriesResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
