package services

import (
	"delivery-schedule-service/internal/domain"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies a scheduling input: capacity plus the deliveries in
// input order. Equal fingerprints produce identical schedules.
func Fingerprint(deliveries []domain.Delivery, capacity domain.Capacity) string {
	h := xxhash.New()
	buf := make([]byte, 0, 64)

	writeInt := func(n int) {
		buf = strconv.AppendInt(buf[:0], int64(n), 10)
		buf = append(buf, ';')
		_, _ = h.Write(buf)
	}

	writeInt(capacity.MaxPlanes)
	writeInt(capacity.MaxTrucks)
	writeInt(len(deliveries))

	for _, d := range deliveries {
		// length prefix keeps ids containing separators unambiguous
		writeInt(len(d.ID))
		_, _ = h.WriteString(d.ID)
		writeInt(d.TotalDuration)
		writeInt(len(d.Steps))

		for _, s := range d.Steps {
			writeInt(int(s.Vehicle))
			writeInt(s.Duration)
		}
	}

	return "schedule:" + strconv.FormatUint(h.Sum64(), 16)
}
