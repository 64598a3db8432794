package repository

import (
	"context"

	"beautyspa/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID              int64   `gorm:"column:id;primaryKey"`
	Name            string  `gorm:"column:name"`
	Price           float64 `gorm:"column:price"`
	DurationMinutes int     `gorm:"column:duration_minutes"`
	IsActive        bool    `gorm:"column:is_active"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.SpaService {
	return &domain.SpaService{
		ID:              m.ID,
		Name:            m.Name,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		IsActive:        m.IsActive,
	}
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*domain.SpaService, error) {
	var m serviceModel
	tx := dbFrom(ctx, r.db).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) Save(ctx context.Context, s *domain.SpaService) error {
	m := serviceModel{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		IsActive:        s.IsActive,
	}
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	return nil
}
