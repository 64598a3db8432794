package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"beautyspa/internal/domain"
)

func TestResolveDisplayStatus(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	ref := time.Date(2026, 8, 31, 11, 30, 0, 0, loc)

	at := func(y int, m time.Month, d, h int) time.Time {
		return time.Date(y, m, d, h, 0, 0, 0, loc)
	}

	cases := []struct {
		name   string
		status domain.AppointmentStatus
		date   time.Time
		want   string
	}{
		{"cancelled wins over any date", domain.AppointmentCancelled, at(2026, 9, 15, 10), DisplayCancelled},
		{"completed wins over any date", domain.AppointmentCompleted, at(2026, 9, 15, 10), DisplayCompleted},
		{"confirmed wins over any date", domain.AppointmentConfirmed, at(2026, 8, 10, 10), DisplayConfirmed},
		{"pending in the past reads completed", domain.AppointmentPending, at(2026, 8, 30, 10), DisplayCompleted},
		{"pending earlier today reads today", domain.AppointmentPending, at(2026, 8, 31, 9), DisplayToday},
		{"pending later today reads today", domain.AppointmentPending, at(2026, 8, 31, 18), DisplayToday},
		{"pending in the future awaits confirmation", domain.AppointmentPending, at(2026, 9, 2, 10), DisplayAwaiting},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveDisplayStatus(tc.status, tc.date, ref, loc))
		})
	}
}

// A date just across midnight in UTC must still group with the spa's local day.
func TestResolveDisplayStatus_TimezoneBoundary(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	ref := time.Date(2026, 8, 31, 11, 30, 0, 0, loc)

	// 2026-08-31 02:00 ICT stored as 2026-08-30 19:00 UTC.
	date := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, DisplayToday, ResolveDisplayStatus(domain.AppointmentPending, date, ref, loc))
}
