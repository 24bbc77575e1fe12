package storage

import (
	"context"
	"delivery-schedule-service/internal/domain"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONScheduleStore(t *testing.T) {
	tl := domain.NewTimeline()
	tl.Append(domain.Plane, "D", 3)
	tl.Append(domain.Plane, "C", 2)
	tl.Assign(0, domain.Truck, "B")

	path := filepath.Join(t.TempDir(), "out", "schedule.json")
	store := NewJSONScheduleStore(path)

	require.NoError(t,
		store.SaveSchedule(
			context.Background(),
			"run-1",
			&domain.Schedule{Timeline: tl},
		),
	)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"planeDeliveries":["D"],"truckDeliveries":["B"]},
		{"planeDeliveries":["D"],"truckDeliveries":[]},
		{"planeDeliveries":["D"],"truckDeliveries":[]},
		{"planeDeliveries":["C"],"truckDeliveries":[]},
		{"planeDeliveries":["C"],"truckDeliveries":[]}
	]`, string(raw))

	_, errStat := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(errStat))

	require.Error(t, store.SaveSchedule(context.Background(), "run-2", nil))
}

func TestJSONScheduleStoreEmptyTimeline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.json")

	require.NoError(t,
		NewJSONScheduleStore(path).SaveSchedule(
			context.Background(),
			"run-empty",
			&domain.Schedule{Timeline: domain.NewTimeline()},
		),
	)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(raw))
}
