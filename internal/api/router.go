package api

import (
	"delivery-schedule-service/internal/api/handlers"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the adapters the HTTP layer is composed from.
// Store and Cache may be nil.
type Dependencies struct {
	Repo       ports.DeliveryRepository
	Store      ports.ScheduleStore
	Cache      ports.ScheduleCache
	Defaults   domain.Capacity
	BatchLimit int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	deliveryHandler := &handlers.DeliveryHandler{Repo: deps.Repo}
	scheduleHandler := &handlers.ScheduleHandler{
		Repo:       deps.Repo,
		Store:      deps.Store,
		Cache:      deps.Cache,
		Defaults:   deps.Defaults,
		BatchLimit: deps.BatchLimit,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/deliveries", deliveryHandler.List)
	mux.HandleFunc("/schedules", scheduleHandler.Schedule)
	mux.HandleFunc("/schedules/batch", scheduleHandler.Batch)
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
