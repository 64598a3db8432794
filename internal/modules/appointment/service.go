package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/now"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"beautyspa/internal/domain"
)

// Stores bundles every persistence dependency of the workflow service.
type Stores struct {
	Appointments AppointmentStore
	Bookings     BookingStore
	Histories    HistoryStore
	Slots        TimeSlotStore
	Services     ServiceStore
	Staff        StaffStore
	Customers    CustomerStore
}

type Service struct {
	stores Stores
	sender Sender
	tx     TxRunner
	loc    *time.Location
	log    *zap.Logger
}

func NewService(stores Stores, sender Sender, tx TxRunner, loc *time.Location, log *zap.Logger) *Service {
	return &Service{
		stores: stores,
		sender: sender,
		tx:     tx,
		loc:    loc,
		log:    log,
	}
}

// Cancel runs the cancellation workflow: validate the appointment's state and
// date window, mark it cancelled, free every calendar reservation backing it
// and mirror the cancellation into its service history, all in one
// transaction. The customer email afterwards is best-effort.
func (s *Service) Cancel(ctx context.Context, appointmentID int64, reason string) (*domain.Appointment, error) {
	var cancelled *domain.Appointment

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		appt, err := s.loadActive(ctx, appointmentID)
		if err != nil {
			return err
		}

		switch appt.Status {
		case domain.AppointmentCancelled:
			return fmt.Errorf("%w: appointment already cancelled", ErrInvalidState)
		case domain.AppointmentCompleted:
			return fmt.Errorf("%w: cannot cancel a completed appointment", ErrInvalidState)
		}

		nowT := time.Now()
		// Same-day cancellation is allowed regardless of time of day; only
		// appointments dated before today are locked.
		if appt.AppointmentDate.Before(now.New(nowT.In(s.loc)).BeginningOfDay()) {
			return fmt.Errorf("%w: appointment date has passed", ErrInvalidState)
		}

		appt.Status = domain.AppointmentCancelled
		appt.Notes = appt.Notes + " | HỦY: " + reason
		appt.UpdatedAt = nowT

		bookings, err := s.stores.Bookings.ListByAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		for _, b := range bookings {
			if err := s.stores.Bookings.Delete(ctx, b.ID); err != nil {
				return err
			}
		}

		histories, err := s.stores.Histories.ListByAppointment(ctx, appointmentID)
		if err != nil {
			return err
		}
		for i := range histories {
			h := histories[i]
			h.Status = domain.AppointmentCancelled
			h.Notes = h.Notes + " | Hủy lịch: " + reason
			h.UpdatedAt = nowT
			if err := s.stores.Histories.Save(ctx, &h); err != nil {
				return err
			}
		}

		if err := s.stores.Appointments.Save(ctx, appt); err != nil {
			return err
		}
		cancelled = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.sendCancellationEmail(ctx, cancelled, reason)
	return cancelled, nil
}

// Update applies a partial change set to an active appointment: plain field
// overwrites, time-window recomputation from date/slot inputs, service and
// staff reassignment driven by the target status, and an availability recheck
// before anything is persisted. On entry into a terminal status the matching
// calendar reservations are deactivated (cancel's own path hard-deletes
// instead).
func (s *Service) Update(ctx context.Context, appointmentID int64, req UpdateAppointmentRequest) (*domain.Appointment, error) {
	var updated *domain.Appointment

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		appt, err := s.loadActive(ctx, appointmentID)
		if err != nil {
			return err
		}

		origStatus := appt.Status
		origStart := appt.AppointmentDate
		origStaffID := appt.StaffID
		origServiceID := appt.ServiceID

		if req.FullName != nil {
			appt.FullName = *req.FullName
		}
		if req.PhoneNumber != nil {
			appt.PhoneNumber = *req.PhoneNumber
		}
		if req.Notes != nil {
			appt.Notes = *req.Notes
		}
		if req.Status != nil {
			st, ok := domain.ParseAppointmentStatus(*req.Status)
			if !ok {
				return fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
			}
			appt.Status = st
		}

		newService, err := s.resolveService(ctx, appt, req.ServiceID)
		if err != nil {
			return err
		}

		newStart, err := s.resolveStart(ctx, appt, req)
		if err != nil {
			return err
		}

		serviceChanged := !int64PtrEqual(origServiceID, appt.ServiceID)
		timeChanged := !newStart.Equal(origStart)

		duration, err := s.resolveDuration(ctx, appt, req, newService, serviceChanged)
		if err != nil {
			return err
		}

		if timeChanged || serviceChanged || req.DurationMinutes != nil {
			appt.AppointmentDate = newStart
			appt.EndTime = newStart.Add(time.Duration(duration) * time.Minute)
		}

		if err := s.resolveStaff(ctx, appt, req.StaffID); err != nil {
			return err
		}
		staffChanged := !int64PtrEqual(origStaffID, appt.StaffID)

		// Single derived predicate for the availability recheck.
		needsRecheck := (timeChanged || staffChanged || serviceChanged) && appt.StaffID != nil
		if needsRecheck {
			free, err := s.stores.Bookings.IsStaffAvailable(ctx, *appt.StaffID, appt.AppointmentDate, duration, appt.ID)
			if err != nil {
				return err
			}
			if !free {
				return fmt.Errorf("%w: %s is not available at %s", ErrConflict,
					s.staffDisplayName(ctx, *appt.StaffID),
					appt.AppointmentDate.In(s.loc).Format("02/01/2006 15:04"))
			}
		}

		appt.UpdatedAt = time.Now()
		if err := s.stores.Appointments.Save(ctx, appt); err != nil {
			return err
		}

		// Genuine entry into a terminal status deactivates the matching
		// reservations rather than deleting them.
		if appt.Status.IsTerminal() && !origStatus.IsTerminal() {
			matches, err := s.stores.Bookings.FindActiveMatch(ctx, appt.StaffID, appt.ServiceID, appt.AppointmentDate)
			if err != nil {
				return err
			}
			for i := range matches {
				b := matches[i]
				b.IsActive = false
				b.Status = appt.Status
				b.UpdatedAt = time.Now()
				if err := s.stores.Bookings.Save(ctx, &b); err != nil {
					return err
				}
			}
		}

		updated = appt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// resolveService swaps the service reference when a different id is supplied.
// Returns the freshly loaded service, or nil when it did not change.
func (s *Service) resolveService(ctx context.Context, appt *domain.Appointment, serviceID *int64) (*domain.SpaService, error) {
	if serviceID == nil || (appt.ServiceID != nil && *appt.ServiceID == *serviceID) {
		return nil, nil
	}
	svc, err := s.stores.Services.GetByID(ctx, *serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service %d", ErrNotFound, *serviceID)
		}
		return nil, err
	}
	appt.ServiceID = &svc.ID
	appt.Price = svc.Price
	return svc, nil
}

// resolveStart computes the appointment's new start instant. Date and slot
// inputs combine by priority: both supplied, date only (keep the current wall
// time), or a differing slot only (keep the current calendar day).
func (s *Service) resolveStart(ctx context.Context, appt *domain.Appointment, req UpdateAppointmentRequest) (time.Time, error) {
	dateSupplied := req.AppointmentDate != nil && *req.AppointmentDate != ""
	slotSupplied := req.SlotID != nil
	slotDiffers := slotSupplied && (appt.SlotID == nil || *appt.SlotID != *req.SlotID)

	current := appt.AppointmentDate.In(s.loc)

	switch {
	case dateSupplied && slotSupplied:
		day, err := s.parseDate(*req.AppointmentDate)
		if err != nil {
			return time.Time{}, err
		}
		slot, startOfDay, err := s.loadSlot(ctx, *req.SlotID)
		if err != nil {
			return time.Time{}, err
		}
		appt.SlotID = &slot.ID
		return combine(day, startOfDay, s.loc), nil

	case dateSupplied:
		day, err := s.parseDate(*req.AppointmentDate)
		if err != nil {
			return time.Time{}, err
		}
		return combine(day, current, s.loc), nil

	case slotDiffers:
		slot, startOfDay, err := s.loadSlot(ctx, *req.SlotID)
		if err != nil {
			return time.Time{}, err
		}
		appt.SlotID = &slot.ID
		return combine(current, startOfDay, s.loc), nil
	}

	return appt.AppointmentDate, nil
}

// resolveDuration picks the minute count for the new time window: the swapped
// service wins, then an explicit positive request value, then the unchanged
// service's own duration, then the earliest still-active booking, then the
// 60-minute default.
func (s *Service) resolveDuration(ctx context.Context, appt *domain.Appointment, req UpdateAppointmentRequest, newService *domain.SpaService, serviceChanged bool) (int, error) {
	if serviceChanged && newService != nil {
		return newService.DurationMinutes, nil
	}
	if req.DurationMinutes != nil && *req.DurationMinutes > 0 {
		return *req.DurationMinutes, nil
	}
	if appt.ServiceID != nil {
		svc, err := s.stores.Services.GetByID(ctx, *appt.ServiceID)
		if err == nil {
			return svc.DurationMinutes, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
	}

	bookings, err := s.stores.Bookings.ListByAppointment(ctx, appt.ID)
	if err != nil {
		return 0, err
	}
	for _, b := range bookings {
		if b.IsActive && b.DurationMinutes > 0 {
			return b.DurationMinutes, nil
		}
	}
	return 60, nil
}

// resolveStaff applies the staff assignment rules for the target status:
// cancelled clears unconditionally, completed keeps the assignment unless a
// different staff id is explicitly supplied, anything else honors the request
// verbatim (explicit null clears, absent field keeps).
func (s *Service) resolveStaff(ctx context.Context, appt *domain.Appointment, staffID OptionalInt64) error {
	switch appt.Status {
	case domain.AppointmentCancelled:
		appt.StaffID = nil
		return nil

	case domain.AppointmentCompleted:
		if !staffID.Set || staffID.Value == nil {
			return nil
		}
		if appt.StaffID != nil && *appt.StaffID == *staffID.Value {
			return nil
		}
		return s.assignStaff(ctx, appt, *staffID.Value)

	default:
		if !staffID.Set {
			return nil
		}
		if staffID.Value == nil {
			appt.StaffID = nil
			return nil
		}
		return s.assignStaff(ctx, appt, *staffID.Value)
	}
}

func (s *Service) assignStaff(ctx context.Context, appt *domain.Appointment, staffID int64) error {
	st, err := s.stores.Staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: staff %d", ErrNotFound, staffID)
		}
		return err
	}
	appt.StaffID = &st.ID
	return nil
}

func (s *Service) loadActive(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.stores.Appointments.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
		}
		return nil, err
	}
	return appt, nil
}

func (s *Service) loadSlot(ctx context.Context, id int64) (*domain.TimeSlot, time.Time, error) {
	slot, err := s.stores.Slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, time.Time{}, fmt.Errorf("%w: time slot %d", ErrNotFound, id)
		}
		return nil, time.Time{}, err
	}
	wall, err := time.Parse("15:04", slot.StartTime)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: slot %d has malformed start time %q", ErrValidation, id, slot.StartTime)
	}
	return slot, wall, nil
}

func (s *Service) parseDate(raw string) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, raw, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be day/month/year", ErrValidation, raw)
	}
	return day, nil
}

func (s *Service) staffDisplayName(ctx context.Context, staffID int64) string {
	st, err := s.stores.Staff.GetByID(ctx, staffID)
	if err != nil || st.FullName == "" {
		return fmt.Sprintf("staff %d", staffID)
	}
	return st.FullName
}

// combine builds an instant from one value's calendar day and another's wall
// time, anchored to loc.
func combine(day, wall time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		wall.Hour(), wall.Minute(), 0, 0, loc)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
