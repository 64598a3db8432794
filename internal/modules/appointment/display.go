package appointment

import (
	"time"

	"github.com/jinzhu/now"

	"beautyspa/internal/domain"
)

// Human-facing status labels for history and dashboard views.
const (
	DisplayCancelled = "cancelled"
	DisplayCompleted = "completed"
	DisplayConfirmed = "confirmed"
	DisplayToday     = "today"
	DisplayAwaiting  = "awaiting confirmation"
	DisplayUpcoming  = "upcoming"
)

// ResolveDisplayStatus derives the label shown for an appointment, evaluated
// against ref (normally time.Now()) in the spa's timezone. Read-only: a past
// pending appointment displays as completed without the stored status ever
// changing.
func ResolveDisplayStatus(status domain.AppointmentStatus, appointmentDate, ref time.Time, loc *time.Location) string {
	switch status {
	case domain.AppointmentCancelled:
		return DisplayCancelled
	case domain.AppointmentCompleted:
		return DisplayCompleted
	case domain.AppointmentConfirmed:
		return DisplayConfirmed
	}

	day := now.New(appointmentDate.In(loc)).BeginningOfDay()
	today := now.New(ref.In(loc)).BeginningOfDay()

	switch {
	case day.Before(today):
		return DisplayCompleted
	case day.Equal(today):
		return DisplayToday
	case status == domain.AppointmentPending:
		return DisplayAwaiting
	default:
		return DisplayUpcoming
	}
}
