package repository

import (
	"context"
	"time"

	"beautyspa/internal/domain"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

type staffModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	FullName  string    `gorm:"column:full_name"`
	Email     string    `gorm:"column:email"`
	Phone     *string   `gorm:"column:phone"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (staffModel) TableName() string { return "staff" }

func toDomainStaff(m staffModel) *domain.Staff {
	var phone string
	if m.Phone != nil {
		phone = *m.Phone
	}
	return &domain.Staff{
		ID:        m.ID,
		FullName:  m.FullName,
		Email:     m.Email,
		Phone:     phone,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	var m staffModel
	tx := dbFrom(ctx, r.db).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) Save(ctx context.Context, s *domain.Staff) error {
	var phone *string
	if s.Phone != "" {
		v := s.Phone
		phone = &v
	}
	m := staffModel{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     phone,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	s.ID = m.ID
	return nil
}
