package repositories

import (
	"bytes"
	"context"
	"delivery-schedule-service/internal/adapters/codec"
	"delivery-schedule-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// JSONDeliveryRepository reads a delivery batch from a JSON file, keeping
// the file order.
type JSONDeliveryRepository struct{ Path string }

func NewJSONDeliveryRepository(path string) *JSONDeliveryRepository {
	return &JSONDeliveryRepository{Path: path}
}

func (r *JSONDeliveryRepository) ListDeliveries(_ context.Context) ([]domain.Delivery, error) {
	if r.Path == "" {
		return nil, errors.New("json delivery repository: path is empty")
	}

	records, err := readDeliveryRecords(r.Path)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	return codec.DecodeDeliveries(records), nil
}

func readDeliveryRecords(path string) ([]codec.DeliveryRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var records []codec.DeliveryRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse json %q: %w", path, err)
	}

	return records, nil
}
