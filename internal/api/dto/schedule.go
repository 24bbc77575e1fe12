package dto

import "delivery-schedule-service/internal/adapters/codec"

type ScheduleRequest struct {
	MaxPlanes  int               `json:"max_planes"`
	MaxTrucks  int               `json:"max_trucks"`
	Deliveries []DeliveryRequest `json:"deliveries"`
	Persist    bool              `json:"persist"`
}

type VehicleUsageResponse struct {
	Vehicle     string  `json:"vehicle"`
	Capacity    int     `json:"capacity"`
	BusySlots   int     `json:"busy_slots"`
	Peak        int     `json:"peak"`
	Utilization float64 `json:"utilization"`
}

type ScheduleResponse struct {
	RunID      string                  `json:"run_id,omitempty"`
	Cached     bool                    `json:"cached"`
	MaxPlanes  int                     `json:"max_planes"`
	MaxTrucks  int                     `json:"max_trucks"`
	Makespan   int                     `json:"makespan"`
	Slots      []codec.SlotRecord      `json:"slots"`
	Placements []codec.PlacementRecord `json:"placements"`
	Usage      []VehicleUsageResponse  `json:"usage"`
}

type BatchScheduleRequest struct {
	Runs []ScheduleRequest `json:"runs"`
}

type BatchScheduleResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}
