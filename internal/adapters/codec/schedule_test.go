package codec

import (
	"delivery-schedule-service/internal/domain"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEncodeSlotsShape(t *testing.T) {
	tl := domain.NewTimeline()
	tl.Append(domain.Truck, "B", 2)
	tl.Assign(0, domain.Plane, "A")

	encoded, err := json.Marshal(EncodeSlots(tl))
	require.NoError(t, err)
	require.JSONEq(t,
		`[{"planeDeliveries":["A"],"truckDeliveries":["B"]},{"planeDeliveries":[],"truckDeliveries":["B"]}]`,
		string(encoded),
	)
}

func TestScheduleRecordRestore(t *testing.T) {
	tl := domain.NewTimeline()
	tl.Append(domain.Plane, "D", 3)
	tl.Append(domain.Plane, "C", 2)

	original := &domain.Schedule{
		Capacity: domain.Capacity{MaxPlanes: 1, MaxTrucks: 1},
		Timeline: tl,
		Placements: []domain.Placement{
			{DeliveryID: "D", Vehicle: domain.Plane, Start: 0, End: 2},
			{DeliveryID: "C", Vehicle: domain.Plane, Start: 3, End: 4},
		},
	}

	payload, err := json.Marshal(EncodeSchedule(original))
	require.NoError(t, err)

	var record ScheduleRecord
	require.NoError(t, json.Unmarshal(payload, &record))

	restored, err := DecodeSchedule(record)
	require.NoError(t, err)
	require.Equal(t, 5, restored.Makespan())
	require.Equal(t, original.Capacity, restored.Capacity)

	if diff := cmp.Diff(EncodeSlots(original.Timeline), EncodeSlots(restored.Timeline)); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(original.Placements, restored.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeScheduleRejectsMakespanMismatch(t *testing.T) {
	_, err := DecodeSchedule(ScheduleRecord{Makespan: 2, Slots: []SlotRecord{{}}})
	require.Error(t, err)
}
