package appointment

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"beautyspa/internal/domain"
)

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.loadActive(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	return s.stores.Appointments.ListActive(ctx)
}

func (s *Service) ListByStaff(ctx context.Context, staffID int64) ([]domain.Appointment, error) {
	return s.stores.Appointments.ListActiveByStaff(ctx, staffID)
}

// SoftDelete hides the appointment from every active-record query without
// touching its bookings or history.
func (s *Service) SoftDelete(ctx context.Context, id int64) error {
	appt, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}
	appt.IsActive = false
	appt.UpdatedAt = time.Now()
	return s.stores.Appointments.Save(ctx, appt)
}

// TodayGrouped returns today's appointments keyed by their slot label, for
// the per-shift admin board.
func (s *Service) TodayGrouped(ctx context.Context) (map[string][]domain.Appointment, error) {
	start := now.New(time.Now().In(s.loc)).BeginningOfDay()
	end := start.AddDate(0, 0, 1)

	appts, err := s.stores.Appointments.ListActiveBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	labels := map[int64]string{}
	grouped := make(map[string][]domain.Appointment)
	for _, a := range appts {
		key := "unassigned"
		if a.SlotID != nil {
			label, ok := labels[*a.SlotID]
			if !ok {
				if slot, err := s.stores.Slots.GetByID(ctx, *a.SlotID); err == nil {
					label = slot.Label
				}
				labels[*a.SlotID] = label
			}
			if label != "" {
				key = label
			}
		}
		grouped[key] = append(grouped[key], a)
	}
	return grouped, nil
}

func (s *Service) HistoryByCustomer(ctx context.Context, customerID int64) ([]HistoryEntry, error) {
	appts, err := s.stores.Appointments.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.toHistoryEntries(ctx, appts), nil
}

func (s *Service) HistoryByPhone(ctx context.Context, phone string) ([]HistoryEntry, error) {
	appts, err := s.stores.Appointments.ListActiveByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	return s.toHistoryEntries(ctx, appts), nil
}

func (s *Service) toHistoryEntries(ctx context.Context, appts []domain.Appointment) []HistoryEntry {
	ref := time.Now()

	slotLabels := map[int64]string{}
	serviceNames := map[int64]string{}
	staffNames := map[int64]string{}

	out := make([]HistoryEntry, 0, len(appts))
	for _, a := range appts {
		e := HistoryEntry{
			AppointmentID: a.ID,
			FullName:      a.FullName,
			PhoneNumber:   a.PhoneNumber,
			Status:        string(a.Status),
			DisplayStatus: ResolveDisplayStatus(a.Status, a.AppointmentDate, ref, s.loc),
			Date:          formatDate(a.AppointmentDate, s.loc),
			ServiceID:     a.ServiceID,
			StaffID:       a.StaffID,
			ServicePrice:  a.Price,
			Notes:         a.Notes,
		}
		if a.SlotID != nil {
			if _, ok := slotLabels[*a.SlotID]; !ok {
				if slot, err := s.stores.Slots.GetByID(ctx, *a.SlotID); err == nil {
					slotLabels[*a.SlotID] = slot.Label
				} else {
					slotLabels[*a.SlotID] = ""
				}
			}
			e.SlotLabel = slotLabels[*a.SlotID]
		}
		if a.ServiceID != nil {
			if _, ok := serviceNames[*a.ServiceID]; !ok {
				if svc, err := s.stores.Services.GetByID(ctx, *a.ServiceID); err == nil {
					serviceNames[*a.ServiceID] = svc.Name
				} else {
					serviceNames[*a.ServiceID] = ""
				}
			}
			e.ServiceName = serviceNames[*a.ServiceID]
		}
		if a.StaffID != nil {
			if _, ok := staffNames[*a.StaffID]; !ok {
				if st, err := s.stores.Staff.GetByID(ctx, *a.StaffID); err == nil {
					staffNames[*a.StaffID] = st.FullName
				} else {
					staffNames[*a.StaffID] = ""
				}
			}
			e.StaffName = staffNames[*a.StaffID]
		}
		out = append(out, e)
	}
	return out
}
