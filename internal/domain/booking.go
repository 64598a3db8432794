package domain

import "time"

// Booking is the staff-calendar reservation backing an appointment's slot. An
// active booking occupies [BookingDateTime, BookingDateTime+DurationMinutes)
// on the staff member's calendar.
type Booking struct {
	ID              int64             `json:"id"`
	AppointmentID   int64             `json:"appointment_id"`
	StaffID         *int64            `json:"staff_id,omitempty"`
	ServiceID       *int64            `json:"service_id,omitempty"`
	BookingDateTime time.Time         `json:"booking_date_time"`
	DurationMinutes int               `json:"duration_minutes"`
	Status          AppointmentStatus `json:"status"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// End returns the exclusive end of the reserved window.
func (b Booking) End() time.Time {
	return b.BookingDateTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}
