package handlers

import (
	"bytes"
	"context"
	"delivery-schedule-service/internal/adapters/cache"
	"delivery-schedule-service/internal/adapters/codec"
	"delivery-schedule-service/internal/api/dto"
	"delivery-schedule-service/internal/domain"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	deliveries []domain.Delivery
	err        error
	calls      int
}

func (r *stubRepository) ListDeliveries(context.Context) ([]domain.Delivery, error) {
	r.calls++
	return r.deliveries, r.err
}

type recordingStore struct {
	saved map[string]*domain.Schedule
	err   error
}

func (s *recordingStore) SaveSchedule(_ context.Context, runID string, schedule *domain.Schedule) error {
	if s.err != nil {
		return s.err
	}
	if s.saved == nil {
		s.saved = make(map[string]*domain.Schedule)
	}
	s.saved[runID] = schedule
	return nil
}

func step(v domain.Vehicle, d int) domain.Step { return domain.Step{Vehicle: v, Duration: d} }

func sampleDeliveries() []domain.Delivery {
	return []domain.Delivery{
		domain.NewDelivery("1", step(domain.Plane, 25)),
		domain.NewDelivery("2", step(domain.Truck, 20), step(domain.Plane, 20), step(domain.Truck, 5)),
		domain.NewDelivery("3", step(domain.Plane, 50), step(domain.Truck, 10)),
		domain.NewDelivery("4", step(domain.Truck, 10)),
		domain.NewDelivery("5", step(domain.Truck, 30), step(domain.Plane, 60), step(domain.Truck, 30)),
	}
}

func newScheduleHandler(repo *stubRepository) *ScheduleHandler {
	return &ScheduleHandler{
		Repo:     repo,
		Defaults: domain.Capacity{MaxPlanes: 1, MaxTrucks: 1},
	}
}

func post(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[dto.HealthResponse](t, rec)
	require.Equal(t, "ok", res.Status)
	_, err := time.Parse(time.RFC3339, res.Time)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListDeliveries(t *testing.T) {
	h := &DeliveryHandler{Repo: &stubRepository{deliveries: sampleDeliveries()}}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/deliveries", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	res := decodeBody[dto.ListDeliveriesResponse](t, rec)
	require.Len(t, res.Deliveries, 5)
	require.Equal(t, "2", res.Deliveries[1].ID)
	require.Equal(t, 45, res.Deliveries[1].TotalDuration)
	require.Equal(t,
		[]dto.StepResponse{
			{Vehicle: "truck", Duration: 20},
			{Vehicle: "plane", Duration: 20},
			{Vehicle: "truck", Duration: 5},
		},
		res.Deliveries[1].Steps,
	)

	failing := &DeliveryHandler{Repo: &stubRepository{err: errors.New("db down")}}
	rec = httptest.NewRecorder()
	failing.List(rec, httptest.NewRequest(http.MethodGet, "/deliveries", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScheduleFromRepository(t *testing.T) {
	repo := &stubRepository{deliveries: sampleDeliveries()}
	h := newScheduleHandler(repo)

	rec := post(t, h.Schedule, `{}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[dto.ScheduleResponse](t, rec)
	require.NotEmpty(t, res.RunID)
	require.False(t, res.Cached)
	require.Equal(t, 1, res.MaxPlanes)
	require.Equal(t, 1, res.MaxTrucks)
	require.Equal(t, 165, res.Makespan)
	require.Len(t, res.Slots, 165)
	require.Equal(t,
		codec.SlotRecord{PlaneDeliveries: []string{"1"}, TruckDeliveries: []string{"5"}},
		res.Slots[0],
	)
	require.Len(t, res.Placements, 9)
	require.Len(t, res.Usage, 2)
	require.Equal(t, "plane", res.Usage[0].Vehicle)
	require.Equal(t, 1, res.Usage[0].Peak)
	require.Equal(t, 1, repo.calls)
}

func TestScheduleInlineDeliveries(t *testing.T) {
	repo := &stubRepository{}
	h := newScheduleHandler(repo)

	body := `{
		"max_planes": 2,
		"max_trucks": 2,
		"deliveries": [
			{"id": "a", "steps": [{"vehicle": "truck", "duration": 3}, {"vehicle": "plane", "duration": 2}]},
			{"id": "b", "steps": [{"vehicle": "plane", "duration": 4}]}
		]
	}`

	rec := post(t, h.Schedule, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[dto.ScheduleResponse](t, rec)
	require.Equal(t, 5, res.Makespan)
	require.Equal(t, []string{"a"}, res.Slots[0].TruckDeliveries)
	require.Equal(t, []string{"b"}, res.Slots[0].PlaneDeliveries)
	require.Equal(t, []string{"a", "b"}, res.Slots[3].PlaneDeliveries)
	require.Zero(t, repo.calls)
}

func TestScheduleUsesCache(t *testing.T) {
	lru, err := cache.NewLRUScheduleCache(8)
	require.NoError(t, err)

	h := newScheduleHandler(&stubRepository{deliveries: sampleDeliveries()})
	h.Cache = lru

	first := decodeBody[dto.ScheduleResponse](t, post(t, h.Schedule, `{}`))
	second := decodeBody[dto.ScheduleResponse](t, post(t, h.Schedule, `{}`))

	require.False(t, first.Cached)
	require.True(t, second.Cached)
	require.NotEqual(t, first.RunID, second.RunID)
	require.Equal(t, first.Slots, second.Slots)
	require.Equal(t, first.Placements, second.Placements)
}

func TestScheduleErrors(t *testing.T) {
	tests := []struct {
		name   string
		repo   *stubRepository
		body   string
		status int
	}{
		{
			name:   "1. unknown field",
			repo:   &stubRepository{},
			body:   `{"max_boats": 1}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "2. trailing data",
			repo:   &stubRepository{},
			body:   `{} {}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "3. negative capacity",
			repo:   &stubRepository{deliveries: sampleDeliveries()},
			body:   `{"max_planes": -1}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "4. unknown vehicle",
			repo:   &stubRepository{},
			body:   `{"deliveries": [{"id": "a", "steps": [{"vehicle": "boat", "duration": 1}]}]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "5. missing delivery id",
			repo:   &stubRepository{},
			body:   `{"deliveries": [{"steps": [{"vehicle": "plane", "duration": 1}]}]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "6. duplicate delivery",
			repo:   &stubRepository{},
			body:   `{"deliveries": [{"id": "a", "steps": []}, {"id": "a", "steps": []}]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "7. oversized step duration",
			repo:   &stubRepository{},
			body:   `{"deliveries": [{"id": "a", "steps": [{"vehicle": "truck", "duration": 100000000000}]}]}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "8. repository failure",
			repo:   &stubRepository{err: errors.New("db down")},
			body:   `{}`,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, newScheduleHandler(tt.repo).Schedule, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			require.Contains(t, decodeBody[map[string]string](t, rec), "error")
		})
	}
}

func TestScheduleBatch(t *testing.T) {
	repo := &stubRepository{deliveries: sampleDeliveries()}
	h := newScheduleHandler(repo)
	h.BatchLimit = 2

	rec := post(t, h.Batch, `{"runs": [{}, {"max_planes": 2, "max_trucks": 2}, {"max_planes": 2}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[dto.BatchScheduleResponse](t, rec)
	require.Len(t, res.Schedules, 3)
	require.Equal(t, 165, res.Schedules[0].Makespan)
	require.Equal(t, 120, res.Schedules[1].Makespan)
	require.Equal(t, 120, res.Schedules[2].Makespan)
	require.Equal(t, 1, res.Schedules[2].MaxTrucks)
	require.Equal(t, 1, repo.calls)

	rec = post(t, h.Batch, `{"runs": []}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h.Batch, `{"runs": [{}, {"max_trucks": -3}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScheduleBatchPersist(t *testing.T) {
	store := &recordingStore{}

	h := newScheduleHandler(&stubRepository{deliveries: sampleDeliveries()})
	h.Store = store

	rec := post(t, h.Batch, `{"runs": [{"persist": true}, {"max_planes": 2, "max_trucks": 2}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decodeBody[dto.BatchScheduleResponse](t, rec)
	require.Len(t, res.Schedules, 2)
	require.NotEmpty(t, res.Schedules[0].RunID)
	require.NotEmpty(t, res.Schedules[1].RunID)

	require.Len(t, store.saved, 1)
	saved, ok := store.saved[res.Schedules[0].RunID]
	require.True(t, ok)
	require.Equal(t, 165, saved.Makespan())

	t.Run(
		"1. persist without a store",
		func(t *testing.T) {
			h := newScheduleHandler(&stubRepository{deliveries: sampleDeliveries()})

			rec := post(t, h.Batch, `{"runs": [{}, {"persist": true}]}`)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
		},
	)

	t.Run(
		"2. store failure",
		func(t *testing.T) {
			h := newScheduleHandler(&stubRepository{deliveries: sampleDeliveries()})
			h.Store = &recordingStore{err: errors.New("disk full")}

			rec := post(t, h.Batch, `{"runs": [{"persist": true}]}`)
			require.Equal(t, http.StatusInternalServerError, rec.Code)
		},
	)
}
