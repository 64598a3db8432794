package domain

import "time"

// ServiceHistory is the per-appointment audit record of service completion or
// cancellation. Rows are mutated in place, never deleted.
type ServiceHistory struct {
	ID            int64             `json:"id"`
	AppointmentID int64             `json:"appointment_id"`
	Status        AppointmentStatus `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
