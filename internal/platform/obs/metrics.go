package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScheduleRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_runs_total",
			Help: "Scheduling runs by delivery source.",
		},
		[]string{"source"},
	)

	ScheduleMakespan = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_makespan_slots",
			Help:    "Makespan of computed schedules in time slots.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		},
	)

	ScheduleCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_cache_requests_total",
			Help: "Schedule cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by path and status code.",
		},
		[]string{"path", "status"},
	)
)
