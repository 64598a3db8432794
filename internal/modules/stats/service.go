package stats

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"beautyspa/internal/domain"
	"beautyspa/internal/modules/appointment"
)

// AppointmentSource is the read-only slice of appointment storage the
// aggregations run over.
type AppointmentSource interface {
	ListActiveByCustomer(ctx context.Context, customerID int64) ([]domain.Appointment, error)
	ListActiveBetween(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

type CustomerStats struct {
	TotalAppointments     int64   `json:"total_appointments"`
	CompletedAppointments int64   `json:"completed_appointments"`
	TotalSpent            float64 `json:"total_spent"`
}

type CustomerSummary struct {
	CustomerStats
	CancelledAppointments int64 `json:"cancelled_appointments"`
	UpcomingAppointments  int64 `json:"upcoming_appointments"`
}

// DashboardOverview feeds today's admin dashboard cards.
type DashboardOverview struct {
	Date             string           `json:"date"`
	TotalToday       int64            `json:"total_today"`
	ByDisplayStatus  map[string]int64 `json:"by_display_status"`
	CompletedRevenue float64          `json:"completed_revenue"`
}

type Service struct {
	appointments AppointmentSource
	loc          *time.Location
}

func NewService(appointments AppointmentSource, loc *time.Location) *Service {
	return &Service{appointments: appointments, loc: loc}
}

// GetCustomerStats aggregates an active customer's visit totals. TotalSpent
// sums the price of completed appointments only.
func (s *Service) GetCustomerStats(ctx context.Context, customerID int64) (*CustomerStats, error) {
	appts, err := s.appointments.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	stats := aggregate(appts)
	return &stats, nil
}

// GetCustomerSummary extends the base stats with cancelled and upcoming
// counts derived through the display-status resolution, so a past pending
// visit counts the same way the history view shows it.
func (s *Service) GetCustomerSummary(ctx context.Context, customerID int64) (*CustomerSummary, error) {
	appts, err := s.appointments.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	summary := CustomerSummary{CustomerStats: aggregate(appts)}
	ref := time.Now()
	for _, a := range appts {
		switch appointment.ResolveDisplayStatus(a.Status, a.AppointmentDate, ref, s.loc) {
		case appointment.DisplayCancelled:
			summary.CancelledAppointments++
		case appointment.DisplayToday, appointment.DisplayAwaiting, appointment.DisplayUpcoming:
			summary.UpcomingAppointments++
		}
	}
	return &summary, nil
}

// GetDashboardOverview breaks today's schedule down by display status.
func (s *Service) GetDashboardOverview(ctx context.Context) (*DashboardOverview, error) {
	ref := time.Now()
	start := now.New(ref.In(s.loc)).BeginningOfDay()
	end := start.AddDate(0, 0, 1)

	appts, err := s.appointments.ListActiveBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		Date:            start.Format("02/01/2006"),
		TotalToday:      int64(len(appts)),
		ByDisplayStatus: make(map[string]int64),
	}
	for _, a := range appts {
		label := appointment.ResolveDisplayStatus(a.Status, a.AppointmentDate, ref, s.loc)
		overview.ByDisplayStatus[label]++
		if a.Status == domain.AppointmentCompleted {
			overview.CompletedRevenue += a.Price
		}
	}
	return overview, nil
}

func aggregate(appts []domain.Appointment) CustomerStats {
	var stats CustomerStats
	stats.TotalAppointments = int64(len(appts))
	for _, a := range appts {
		if a.Status == domain.AppointmentCompleted {
			stats.CompletedAppointments++
			stats.TotalSpent += a.Price
		}
	}
	return stats
}
