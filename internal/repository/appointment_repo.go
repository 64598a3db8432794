package repository

import (
	"context"
	"time"

	"beautyspa/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	FullName        string    `gorm:"column:full_name"`
	PhoneNumber     string    `gorm:"column:phone_number;index"`
	Status          string    `gorm:"column:status"`
	AppointmentDate time.Time `gorm:"column:appointment_date;index"`
	EndTime         time.Time `gorm:"column:end_time"`
	SlotID          *int64    `gorm:"column:slot_id"`
	ServiceID       *int64    `gorm:"column:service_id"`
	StaffID         *int64    `gorm:"column:staff_id;index"`
	CustomerID      *int64    `gorm:"column:customer_id;index"`
	Notes           string    `gorm:"column:notes;type:text"`
	Price           float64   `gorm:"column:price"`
	IsActive        bool      `gorm:"column:is_active;index"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	return &domain.Appointment{
		ID:              m.ID,
		FullName:        m.FullName,
		PhoneNumber:     m.PhoneNumber,
		Status:          domain.AppointmentStatus(m.Status),
		AppointmentDate: m.AppointmentDate,
		EndTime:         m.EndTime,
		SlotID:          m.SlotID,
		ServiceID:       m.ServiceID,
		StaffID:         m.StaffID,
		CustomerID:      m.CustomerID,
		Notes:           m.Notes,
		Price:           m.Price,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	return appointmentModel{
		ID:              a.ID,
		FullName:        a.FullName,
		PhoneNumber:     a.PhoneNumber,
		Status:          string(a.Status),
		AppointmentDate: a.AppointmentDate,
		EndTime:         a.EndTime,
		SlotID:          a.SlotID,
		ServiceID:       a.ServiceID,
		StaffID:         a.StaffID,
		CustomerID:      a.CustomerID,
		Notes:           a.Notes,
		Price:           a.Price,
		IsActive:        a.IsActive,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *AppointmentRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	tx := dbFrom(ctx, r.db).Where("id = ? AND is_active = ?", id, true).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

func (r *AppointmentRepository) Save(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) ListActive(ctx context.Context) ([]domain.Appointment, error) {
	return r.list(ctx, dbFrom(ctx, r.db).Where("is_active = ?", true).Order("created_at DESC"))
}

func (r *AppointmentRepository) ListActiveByStaff(ctx context.Context, staffID int64) ([]domain.Appointment, error) {
	return r.list(ctx, dbFrom(ctx, r.db).
		Where("staff_id = ? AND is_active = ?", staffID, true).
		Order("appointment_date DESC"))
}

func (r *AppointmentRepository) ListActiveByCustomer(ctx context.Context, customerID int64) ([]domain.Appointment, error) {
	return r.list(ctx, dbFrom(ctx, r.db).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		Order("appointment_date DESC"))
}

func (r *AppointmentRepository) ListActiveByPhone(ctx context.Context, phone string) ([]domain.Appointment, error) {
	return r.list(ctx, dbFrom(ctx, r.db).
		Where("phone_number = ? AND is_active = ?", phone, true).
		Order("appointment_date DESC"))
}

func (r *AppointmentRepository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]domain.Appointment, error) {
	return r.list(ctx, dbFrom(ctx, r.db).
		Where("appointment_date >= ? AND appointment_date < ? AND is_active = ?", from, to, true).
		Order("appointment_date ASC"))
}

func (r *AppointmentRepository) list(_ context.Context, q *gorm.DB) ([]domain.Appointment, error) {
	var models []appointmentModel
	if tx := q.Find(&models); tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Appointment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}
