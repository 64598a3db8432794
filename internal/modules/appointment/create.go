package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"beautyspa/internal/domain"
)

// Create books a new visit: the slot's wall time combined with the requested
// date gives the start instant, the service gives price and duration, and
// when a staff member is requested their calendar is checked before the
// appointment, its booking and its pending history row are written in one
// transaction.
func (s *Service) Create(ctx context.Context, req CreateAppointmentRequest) (*domain.Appointment, error) {
	var created *domain.Appointment

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		day, err := s.parseDate(req.AppointmentDate)
		if err != nil {
			return err
		}
		slot, wall, err := s.loadSlot(ctx, req.SlotID)
		if err != nil {
			return err
		}
		start := combine(day, wall, s.loc)

		nowT := time.Now()
		if start.Before(nowT) {
			return fmt.Errorf("%w: appointment time %s is in the past", ErrValidation,
				start.In(s.loc).Format("02/01/2006 15:04"))
		}

		svc, err := s.stores.Services.GetByID(ctx, req.ServiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: service %d", ErrNotFound, req.ServiceID)
			}
			return err
		}

		var staffID *int64
		if req.StaffID != nil {
			st, err := s.stores.Staff.GetByID(ctx, *req.StaffID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: staff %d", ErrNotFound, *req.StaffID)
				}
				return err
			}
			staffID = &st.ID

			free, err := s.stores.Bookings.IsStaffAvailable(ctx, st.ID, start, svc.DurationMinutes, 0)
			if err != nil {
				return err
			}
			if !free {
				return fmt.Errorf("%w: %s is not available at %s", ErrConflict,
					st.FullName, start.In(s.loc).Format("02/01/2006 15:04"))
			}
		}

		appt := &domain.Appointment{
			FullName:        req.FullName,
			PhoneNumber:     req.PhoneNumber,
			Status:          domain.AppointmentPending,
			AppointmentDate: start,
			EndTime:         start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
			SlotID:          &slot.ID,
			ServiceID:       &svc.ID,
			StaffID:         staffID,
			CustomerID:      req.CustomerID,
			Notes:           req.Notes,
			Price:           svc.Price,
			IsActive:        true,
			CreatedAt:       nowT,
			UpdatedAt:       nowT,
		}
		if err := s.stores.Appointments.Save(ctx, appt); err != nil {
			return err
		}

		booking := &domain.Booking{
			AppointmentID:   appt.ID,
			StaffID:         staffID,
			ServiceID:       &svc.ID,
			BookingDateTime: start,
			DurationMinutes: svc.DurationMinutes,
			Status:          domain.AppointmentPending,
			IsActive:        true,
			CreatedAt:       nowT,
			UpdatedAt:       nowT,
		}
		if err := s.stores.Bookings.Save(ctx, booking); err != nil {
			return err
		}

		history := &domain.ServiceHistory{
			AppointmentID: appt.ID,
			Status:        domain.AppointmentPending,
			CreatedAt:     nowT,
			UpdatedAt:     nowT,
		}
		if err := s.stores.Histories.Save(ctx, history); err != nil {
			return err
		}

		created = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(ctx, created)
	return created, nil
}
