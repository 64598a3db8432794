package domain

import (
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus normalizes the free-form status strings the legacy
// data carries ("Cancelled", "COMPLETED", ...) into the closed enum.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case AppointmentPending:
		return AppointmentPending, true
	case AppointmentConfirmed:
		return AppointmentConfirmed, true
	case AppointmentCompleted:
		return AppointmentCompleted, true
	case AppointmentCancelled:
		return AppointmentCancelled, true
	}
	return "", false
}

// IsTerminal reports whether the status admits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// Appointment is one scheduled customer visit: one service, one staff member,
// one time window. Relations are held as ids and resolved through the stores,
// not as live references.
type Appointment struct {
	ID              int64             `json:"id"`
	FullName        string            `json:"full_name"`
	PhoneNumber     string            `json:"phone_number"`
	Status          AppointmentStatus `json:"status"`
	AppointmentDate time.Time         `json:"appointment_date"`
	EndTime         time.Time         `json:"end_time"`
	SlotID          *int64            `json:"slot_id,omitempty"`
	ServiceID       *int64            `json:"service_id,omitempty"`
	StaffID         *int64            `json:"staff_id,omitempty"`
	CustomerID      *int64            `json:"customer_id,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Price           float64           `json:"price"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
