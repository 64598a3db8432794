package appointment

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the wire format for appointment dates: day/month/year, as the
// frontends submit them.
const DateLayout = "02/01/2006"

// OptionalInt64 distinguishes "field absent" from "field explicitly null" in
// an update payload. Absent means keep the current value; null means clear it.
type OptionalInt64 struct {
	Set   bool
	Value *int64
}

func (o *OptionalInt64) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

type CreateAppointmentRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	SlotID          int64  `json:"slot_id" binding:"required"`
	ServiceID       int64  `json:"service_id" binding:"required"`
	StaffID         *int64 `json:"staff_id"`
	CustomerID      *int64 `json:"customer_id"`
	Notes           string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	FullName        *string       `json:"full_name"`
	PhoneNumber     *string       `json:"phone_number"`
	Notes           *string       `json:"notes"`
	Status          *string       `json:"status"`
	AppointmentDate *string       `json:"appointment_date"`
	SlotID          *int64        `json:"slot_id"`
	ServiceID       *int64        `json:"service_id"`
	StaffID         OptionalInt64 `json:"staff_id"`
	DurationMinutes *int          `json:"duration_minutes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// HistoryEntry is the customer-facing view of one past or scheduled visit,
// with the derived display status from ResolveDisplayStatus.
type HistoryEntry struct {
	AppointmentID int64   `json:"appointment_id"`
	FullName      string  `json:"full_name"`
	PhoneNumber   string  `json:"phone_number"`
	Status        string  `json:"status"`
	DisplayStatus string  `json:"display_status"`
	Date          string  `json:"appointment_date"`
	SlotLabel     string  `json:"slot,omitempty"`
	ServiceID     *int64  `json:"service_id,omitempty"`
	ServiceName   string  `json:"service_name,omitempty"`
	StaffID       *int64  `json:"staff_id,omitempty"`
	StaffName     string  `json:"staff_name,omitempty"`
	ServicePrice  float64 `json:"service_price"`
	Notes         string  `json:"notes,omitempty"`
}

func formatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}
