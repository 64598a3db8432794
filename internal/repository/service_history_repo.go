package repository

import (
	"context"
	"time"

	"beautyspa/internal/domain"

	"gorm.io/gorm"
)

type ServiceHistoryRepository struct {
	db *gorm.DB
}

func NewServiceHistoryRepository(db *gorm.DB) *ServiceHistoryRepository {
	return &ServiceHistoryRepository{db: db}
}

type serviceHistoryModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	AppointmentID int64     `gorm:"column:appointment_id;index"`
	Status        string    `gorm:"column:status"`
	Notes         string    `gorm:"column:notes;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (serviceHistoryModel) TableName() string { return "service_histories" }

func toDomainServiceHistory(m serviceHistoryModel) *domain.ServiceHistory {
	return &domain.ServiceHistory{
		ID:            m.ID,
		AppointmentID: m.AppointmentID,
		Status:        domain.AppointmentStatus(m.Status),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toServiceHistoryModel(h *domain.ServiceHistory) serviceHistoryModel {
	return serviceHistoryModel{
		ID:            h.ID,
		AppointmentID: h.AppointmentID,
		Status:        string(h.Status),
		Notes:         h.Notes,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

func (r *ServiceHistoryRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]domain.ServiceHistory, error) {
	var models []serviceHistoryModel
	tx := dbFrom(ctx, r.db).
		Where("appointment_id = ?", appointmentID).
		Order("id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ServiceHistory, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainServiceHistory(m))
	}
	return out, nil
}

func (r *ServiceHistoryRepository) Save(ctx context.Context, h *domain.ServiceHistory) error {
	m := toServiceHistoryModel(h)
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*h = *toDomainServiceHistory(m)
	return nil
}
