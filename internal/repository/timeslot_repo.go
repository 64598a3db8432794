package repository

import (
	"context"

	"beautyspa/internal/domain"

	"gorm.io/gorm"
)

type TimeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

type timeSlotModel struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	Label     string `gorm:"column:label"`
	StartTime string `gorm:"column:start_time"`
	IsActive  bool   `gorm:"column:is_active"`
}

func (timeSlotModel) TableName() string { return "time_slots" }

func toDomainTimeSlot(m timeSlotModel) *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:        m.ID,
		Label:     m.Label,
		StartTime: m.StartTime,
		IsActive:  m.IsActive,
	}
}

func (r *TimeSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	var m timeSlotModel
	tx := dbFrom(ctx, r.db).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTimeSlot(m), nil
}

func (r *TimeSlotRepository) ListActive(ctx context.Context) ([]domain.TimeSlot, error) {
	var models []timeSlotModel
	tx := dbFrom(ctx, r.db).Where("is_active = ?", true).Order("start_time ASC").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.TimeSlot, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTimeSlot(m))
	}
	return out, nil
}

func (r *TimeSlotRepository) Save(ctx context.Context, s *domain.TimeSlot) error {
	m := timeSlotModel{ID: s.ID, Label: s.Label, StartTime: s.StartTime, IsActive: s.IsActive}
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	return nil
}
