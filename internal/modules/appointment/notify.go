package appointment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"beautyspa/internal/domain"
)

// Notification emails are best-effort: every failure lands in the log and
// none of them ever surfaces to the caller or rolls back the operation that
// triggered them.

func (s *Service) sendCancellationEmail(ctx context.Context, appt *domain.Appointment, reason string) {
	email := s.customerEmail(ctx, appt)
	if email == "" {
		s.log.Warn("no customer email for cancellation notice", zap.Int64("appointment_id", appt.ID))
		return
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your appointment has been cancelled:\n\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Service: %s\n"+
			"Reason: %s\n\n"+
			"We are sorry for the inconvenience. You can book a new visit any "+
			"time on our website or by calling the hotline.\n\n"+
			"Beauty Spa Team",
		appt.FullName,
		formatDate(appt.AppointmentDate, s.loc),
		s.slotLabel(ctx, appt),
		s.serviceName(ctx, appt),
		reason,
	)

	if err := s.sender.Send(email, "Appointment cancelled - Beauty Spa", body); err != nil {
		s.log.Warn("cancellation email failed",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
		return
	}
	s.log.Info("cancellation email sent", zap.Int64("appointment_id", appt.ID))
}

func (s *Service) sendConfirmationEmail(ctx context.Context, appt *domain.Appointment) {
	email := s.customerEmail(ctx, appt)
	if email == "" {
		return
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your appointment is booked:\n\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Service: %s\n\n"+
			"See you soon!\n\n"+
			"Beauty Spa Team",
		appt.FullName,
		formatDate(appt.AppointmentDate, s.loc),
		s.slotLabel(ctx, appt),
		s.serviceName(ctx, appt),
	)

	if err := s.sender.Send(email, "Appointment confirmation - Beauty Spa", body); err != nil {
		s.log.Warn("confirmation email failed",
			zap.Int64("appointment_id", appt.ID),
			zap.Error(err))
	}
}

func (s *Service) customerEmail(ctx context.Context, appt *domain.Appointment) string {
	if appt.CustomerID == nil {
		return ""
	}
	customer, err := s.stores.Customers.GetByID(ctx, *appt.CustomerID)
	if err != nil {
		return ""
	}
	return customer.Email
}

func (s *Service) slotLabel(ctx context.Context, appt *domain.Appointment) string {
	if appt.SlotID != nil {
		if slot, err := s.stores.Slots.GetByID(ctx, *appt.SlotID); err == nil && slot.Label != "" {
			return slot.Label
		}
	}
	return appt.AppointmentDate.In(s.loc).Format("15:04")
}

func (s *Service) serviceName(ctx context.Context, appt *domain.Appointment) string {
	if appt.ServiceID != nil {
		if svc, err := s.stores.Services.GetByID(ctx, *appt.ServiceID); err == nil {
			return svc.Name
		}
	}
	return "N/A"
}
