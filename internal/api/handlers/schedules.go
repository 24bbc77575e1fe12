package handlers

import (
	"delivery-schedule-service/internal/adapters/codec"
	"delivery-schedule-service/internal/api/dto"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/ports"
	"delivery-schedule-service/internal/services"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleHandler runs the greedy scheduler for HTTP callers.
// Cache and Store are optional.
type ScheduleHandler struct {
	Repo     ports.DeliveryRepository
	Store    ports.ScheduleStore
	Cache    ports.ScheduleCache
	Defaults domain.Capacity
	// BatchLimit caps concurrent runs in a batch; zero means no cap.
	BatchLimit int
}

func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	planReq, err := h.toPlanRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := services.PlanSchedule(r.Context(), planReq, h.Repo, h.Store, h.Cache)
	if err != nil {
		h.fail(w, r, "plan schedule failed", err)
		return
	}

	res := toScheduleResponse(result.Schedule)
	res.RunID = result.RunID
	res.Cached = result.Cached

	writeJSON(w, r, http.StatusOK, res)
}

func (h *ScheduleHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Runs) == 0 {
		writeError(w, r, http.StatusBadRequest, "runs must not be empty")
		return
	}

	runs := make([]services.BatchRun, 0, len(req.Runs))
	persist := make([]bool, 0, len(req.Runs))

	var stored []domain.Delivery
	for i, runReq := range req.Runs {
		planReq, err := h.toPlanRequest(runReq)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("run #%d: %s", i+1, err))
			return
		}

		if planReq.Deliveries == nil {
			if h.Repo == nil {
				writeError(w, r, http.StatusBadRequest, fmt.Sprintf("run #%d: deliveries are required", i+1))
				return
			}
			if stored == nil {
				stored, err = h.Repo.ListDeliveries(r.Context())
				if err != nil {
					h.fail(w, r, "list deliveries failed", err)
					return
				}
			}
			planReq.Deliveries = stored
		}

		if planReq.Persist && h.Store == nil {
			h.fail(w, r, "schedule batch failed", fmt.Errorf("run #%d: persist requested without a schedule store", i+1))
			return
		}

		runs = append(runs, services.BatchRun{
			Deliveries: planReq.Deliveries,
			Capacity:   planReq.Capacity,
		})
		persist = append(persist, planReq.Persist)
	}

	schedules, err := services.ScheduleBatches(r.Context(), runs, h.BatchLimit)
	if err != nil {
		h.fail(w, r, "schedule batch failed", err)
		return
	}

	res := dto.BatchScheduleResponse{
		Schedules: make([]dto.ScheduleResponse, 0, len(schedules)),
	}
	for i, s := range schedules {
		runRes := toScheduleResponse(s)
		runRes.RunID = uuid.NewString()

		if persist[i] {
			if err := h.Store.SaveSchedule(r.Context(), runRes.RunID, s); err != nil {
				h.fail(w, r, "save batch schedule failed", fmt.Errorf("run #%d: %w", i+1, err))
				return
			}
		}

		res.Schedules = append(res.Schedules, runRes)
	}

	writeJSON(w, r, http.StatusOK, res)
}

// toPlanRequest fills zero capacities from the handler defaults.
func (h *ScheduleHandler) toPlanRequest(req dto.ScheduleRequest) (services.PlanScheduleRequest, error) {
	capacity := domain.Capacity{MaxPlanes: req.MaxPlanes, MaxTrucks: req.MaxTrucks}
	if capacity.MaxPlanes == 0 {
		capacity.MaxPlanes = h.Defaults.MaxPlanes
	}
	if capacity.MaxTrucks == 0 {
		capacity.MaxTrucks = h.Defaults.MaxTrucks
	}

	planReq := services.PlanScheduleRequest{
		Capacity: capacity,
		Persist:  req.Persist,
	}

	if req.Deliveries != nil {
		deliveries, err := toDeliveries(req.Deliveries)
		if err != nil {
			return services.PlanScheduleRequest{}, err
		}
		planReq.Deliveries = deliveries
	}

	return planReq, nil
}

func (h *ScheduleHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if isValidation(err) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	zap.L().Error(msg,
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.Error(err),
	)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func toScheduleResponse(s *domain.Schedule) dto.ScheduleResponse {
	summary := services.Summarize(s)

	usage := make([]dto.VehicleUsageResponse, 0, len(summary.Usage))
	for _, u := range summary.Usage {
		usage = append(usage, dto.VehicleUsageResponse{
			Vehicle:     u.Vehicle.String(),
			Capacity:    u.Capacity,
			BusySlots:   u.BusySlots,
			Peak:        u.Peak,
			Utilization: u.Utilization,
		})
	}

	return dto.ScheduleResponse{
		MaxPlanes:  s.Capacity.MaxPlanes,
		MaxTrucks:  s.Capacity.MaxTrucks,
		Makespan:   s.Makespan(),
		Slots:      codec.EncodeSlots(s.Timeline),
		Placements: codec.EncodePlacements(s.Placements),
		Usage:      usage,
	}
}
