package appointment

import (
	"context"
	"time"

	"beautyspa/internal/domain"
)

// AppointmentStore is the active-record view over appointments. Soft-deleted
// rows never come back from any of these.
type AppointmentStore interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Save(ctx context.Context, a *domain.Appointment) error
	ListActive(ctx context.Context) ([]domain.Appointment, error)
	ListActiveByStaff(ctx context.Context, staffID int64) ([]domain.Appointment, error)
	ListActiveByCustomer(ctx context.Context, customerID int64) ([]domain.Appointment, error)
	ListActiveByPhone(ctx context.Context, phone string) ([]domain.Appointment, error)
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

// BookingStore manages staff-calendar reservations. IsStaffAvailable is the
// availability oracle: it must run inside the same transaction as the write
// it guards so the check-then-write sequence sees one consistent snapshot.
type BookingStore interface {
	ListByAppointment(ctx context.Context, appointmentID int64) ([]domain.Booking, error)
	FindActiveMatch(ctx context.Context, staffID, serviceID *int64, at time.Time) ([]domain.Booking, error)
	Save(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	IsStaffAvailable(ctx context.Context, staffID int64, start time.Time, durationMinutes int, excludeAppointmentID int64) (bool, error)
}

type HistoryStore interface {
	ListByAppointment(ctx context.Context, appointmentID int64) ([]domain.ServiceHistory, error)
	Save(ctx context.Context, h *domain.ServiceHistory) error
}

type TimeSlotStore interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
}

type ServiceStore interface {
	GetByID(ctx context.Context, id int64) (*domain.SpaService, error)
}

type StaffStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

type CustomerStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// Sender delivers customer notifications. Failures are logged by the caller
// and never abort the surrounding operation.
type Sender interface {
	Send(to, subject, body string) error
}

// TxRunner executes fn atomically: an error rolls back every store write made
// through the ctx it passes in.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
