package handlers

import (
	"delivery-schedule-service/internal/api/dto"
	"delivery-schedule-service/internal/platform/obs"
	"delivery-schedule-service/internal/ports"
	"net/http"

	"go.uber.org/zap"
)

// DeliveryHandler exposes read-only delivery retrieval endpoints.
type DeliveryHandler struct {
	Repo ports.DeliveryRepository
}

func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	deliveries, err := h.Repo.ListDeliveries(r.Context())
	if err != nil {
		zap.L().Error("list deliveries failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDeliveriesResponse{
		Deliveries: make([]dto.DeliveryResponse, 0, len(deliveries)),
	}
	for _, d := range deliveries {
		res.Deliveries = append(res.Deliveries, toDeliveryResponse(d))
	}

	writeJSON(w, r, http.StatusOK, res)
}
