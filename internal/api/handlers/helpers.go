package handlers

import (
	"delivery-schedule-service/internal/api/dto"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid json body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// isValidation reports whether err is an input problem rather than a server fault.
func isValidation(err error) bool {
	var errValidation goerrors.ErrValidation
	return errors.As(err, &errValidation)
}

func toDeliveries(reqs []dto.DeliveryRequest) ([]domain.Delivery, error) {
	out := make([]domain.Delivery, 0, len(reqs))

	for i, req := range reqs {
		if _, err := govalidator.ValidateStruct(req); err != nil {
			return nil, fmt.Errorf("delivery #%d: %w", i+1, err)
		}

		steps := make([]domain.Step, 0, len(req.Steps))
		for j, s := range req.Steps {
			if _, err := govalidator.ValidateStruct(s); err != nil {
				return nil, fmt.Errorf("delivery %q step #%d: %w", req.ID, j+1, err)
			}

			v, err := domain.ParseVehicle(s.Vehicle)
			if err != nil {
				return nil, fmt.Errorf("delivery %q step #%d: %w", req.ID, j+1, err)
			}
			steps = append(steps, domain.Step{Vehicle: v, Duration: s.Duration})
		}

		d := domain.NewDelivery(req.ID, steps...)
		switch {
		case req.TotalDuration != 0:
			d.TotalDuration = req.TotalDuration
		case req.TotalDurationCamel != 0:
			d.TotalDuration = req.TotalDurationCamel
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, nil
}

func toDeliveryResponse(d domain.Delivery) dto.DeliveryResponse {
	steps := make([]dto.StepResponse, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, dto.StepResponse{Vehicle: s.Vehicle.String(), Duration: s.Duration})
	}

	return dto.DeliveryResponse{
		ID:            d.ID,
		TotalDuration: d.TotalDuration,
		Steps:         steps,
	}
}
