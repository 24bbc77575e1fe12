package storage

import (
	"context"
	"delivery-schedule-service/internal/adapters/codec"
	"delivery-schedule-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONScheduleStore writes the timeline as a JSON array with one
// {"planeDeliveries","truckDeliveries"} object per slot.
//
// Every run overwrites the same file; the run id is not part of the output.
type JSONScheduleStore struct {
	Path string
}

func NewJSONScheduleStore(path string) *JSONScheduleStore {
	return &JSONScheduleStore{Path: path}
}

func (s *JSONScheduleStore) SaveSchedule(_ context.Context, runID string, schedule *domain.Schedule) error {
	if schedule == nil || schedule.Timeline == nil {
		return errors.New("save schedule json: schedule is nil")
	}

	payload, err := json.Marshal(codec.EncodeSlots(schedule.Timeline))
	if err != nil {
		return fmt.Errorf("save schedule json run=%s: encode: %w", runID, err)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save schedule json run=%s: create dir %q: %w", runID, dir, err)
		}
	}

	// write then rename so readers never see a partial file
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("save schedule json run=%s: write %q: %w", runID, tmp, err)
	}

	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("save schedule json run=%s: rename to %q: %w", runID, s.Path, err)
	}

	return nil
}
