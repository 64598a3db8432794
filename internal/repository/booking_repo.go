package repository

import (
	"context"
	"time"

	"beautyspa/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	AppointmentID   int64     `gorm:"column:appointment_id;index"`
	StaffID         *int64    `gorm:"column:staff_id;index"`
	ServiceID       *int64    `gorm:"column:service_id"`
	BookingDateTime time.Time `gorm:"column:booking_date_time;index"`
	DurationMinutes int       `gorm:"column:duration_minutes"`
	Status          string    `gorm:"column:status"`
	IsActive        bool      `gorm:"column:is_active;index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		AppointmentID:   m.AppointmentID,
		StaffID:         m.StaffID,
		ServiceID:       m.ServiceID,
		BookingDateTime: m.BookingDateTime,
		DurationMinutes: m.DurationMinutes,
		Status:          domain.AppointmentStatus(m.Status),
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		AppointmentID:   b.AppointmentID,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		BookingDateTime: b.BookingDateTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		IsActive:        b.IsActive,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]domain.Booking, error) {
	var models []bookingModel
	tx := dbFrom(ctx, r.db).
		Where("appointment_id = ?", appointmentID).
		Order("booking_date_time ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

// FindActiveMatch locates active bookings by the (staff, service, start time)
// composite key. Nil staff or service ids match NULL columns.
func (r *BookingRepository) FindActiveMatch(ctx context.Context, staffID, serviceID *int64, at time.Time) ([]domain.Booking, error) {
	q := dbFrom(ctx, r.db).Where("booking_date_time = ? AND is_active = ?", at, true)
	if staffID != nil {
		q = q.Where("staff_id = ?", *staffID)
	} else {
		q = q.Where("staff_id IS NULL")
	}
	if serviceID != nil {
		q = q.Where("service_id = ?", *serviceID)
	} else {
		q = q.Where("service_id IS NULL")
	}

	var models []bookingModel
	if tx := q.Order("id ASC").Find(&models); tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(models), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return dbFrom(ctx, r.db).Delete(&bookingModel{}, id).Error
}

// IsStaffAvailable reports whether the staff member's calendar is free for
// [start, start+duration). Bookings of excludeAppointmentID do not count; the
// appointment being moved must not conflict with itself. Overlap is evaluated
// in Go so the query stays portable between postgres and sqlite; candidates
// are bounded by a day because no catalog service runs longer.
func (r *BookingRepository) IsStaffAvailable(ctx context.Context, staffID int64, start time.Time, durationMinutes int, excludeAppointmentID int64) (bool, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	var models []bookingModel
	tx := dbFrom(ctx, r.db).
		Where("staff_id = ? AND is_active = ? AND appointment_id <> ?", staffID, true, excludeAppointmentID).
		Where("booking_date_time < ? AND booking_date_time > ?", end, start.Add(-24*time.Hour)).
		Find(&models)
	if tx.Error != nil {
		return false, tx.Error
	}

	for _, m := range models {
		bEnd := m.BookingDateTime.Add(time.Duration(m.DurationMinutes) * time.Minute)
		if m.BookingDateTime.Before(end) && bEnd.After(start) {
			return false, nil
		}
	}
	return true, nil
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}
