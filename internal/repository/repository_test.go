package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"beautyspa/internal/database"
	"beautyspa/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func i64(v int64) *int64 { return &v }

func TestAppointmentRepository_SoftDeleteHidesRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	appt := &domain.Appointment{
		FullName:        "Pham Quynh Chi",
		PhoneNumber:     "0901234567",
		Status:          domain.AppointmentPending,
		AppointmentDate: time.Now().Add(48 * time.Hour),
		IsActive:        true,
	}
	require.NoError(t, repo.Save(ctx, appt))
	require.NotZero(t, appt.ID)

	got, err := repo.GetActiveByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pham Quynh Chi", got.FullName)

	got.IsActive = false
	require.NoError(t, repo.Save(ctx, got))

	_, err = repo.GetActiveByID(ctx, appt.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAppointmentRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	base := time.Now().Add(24 * time.Hour)
	seed := []domain.Appointment{
		{FullName: "A", PhoneNumber: "111", Status: domain.AppointmentPending, AppointmentDate: base, StaffID: i64(1), CustomerID: i64(9), IsActive: true},
		{FullName: "B", PhoneNumber: "111", Status: domain.AppointmentConfirmed, AppointmentDate: base.Add(time.Hour), StaffID: i64(2), CustomerID: i64(9), IsActive: true},
		{FullName: "C", PhoneNumber: "222", Status: domain.AppointmentPending, AppointmentDate: base.Add(2 * time.Hour), StaffID: i64(1), IsActive: false},
	}
	for i := range seed {
		require.NoError(t, repo.Save(ctx, &seed[i]))
	}

	byStaff, err := repo.ListActiveByStaff(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byStaff, 1, "inactive rows must stay hidden")
	assert.Equal(t, "A", byStaff[0].FullName)

	byCustomer, err := repo.ListActiveByCustomer(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	byPhone, err := repo.ListActiveByPhone(ctx, "111")
	require.NoError(t, err)
	assert.Len(t, byPhone, 2)

	between, err := repo.ListActiveBetween(ctx, base.Add(30*time.Minute), base.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, between, 1)
	assert.Equal(t, "B", between[0].FullName)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	appts := NewAppointmentRepository(db)
	bookings := NewBookingRepository(db)
	tm := NewTxManager(db)
	ctx := context.Background()

	failed := errors.New("abort")
	err := tm.InTx(ctx, func(ctx context.Context) error {
		appt := &domain.Appointment{
			FullName:        "Rollback",
			PhoneNumber:     "000",
			Status:          domain.AppointmentPending,
			AppointmentDate: time.Now().Add(time.Hour),
			IsActive:        true,
		}
		if err := appts.Save(ctx, appt); err != nil {
			return err
		}
		if err := bookings.Save(ctx, &domain.Booking{
			AppointmentID:   appt.ID,
			BookingDateTime: appt.AppointmentDate,
			DurationMinutes: 60,
			Status:          domain.AppointmentPending,
			IsActive:        true,
		}); err != nil {
			return err
		}
		return failed
	})
	assert.ErrorIs(t, err, failed)

	all, err := appts.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rolled-back appointment must not persist")

	var count int64
	require.NoError(t, db.Table("bookings").Count(&count).Error)
	assert.Zero(t, count, "rolled-back booking must not persist")
}

func TestTxManager_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	appts := NewAppointmentRepository(db)
	tm := NewTxManager(db)
	ctx := context.Background()

	err := tm.InTx(ctx, func(ctx context.Context) error {
		return appts.Save(ctx, &domain.Appointment{
			FullName:        "Commit",
			PhoneNumber:     "000",
			Status:          domain.AppointmentPending,
			AppointmentDate: time.Now().Add(time.Hour),
			IsActive:        true,
		})
	})
	require.NoError(t, err)

	all, err := appts.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookingRepository_IsStaffAvailable(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	at := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &domain.Booking{
		AppointmentID:   1,
		StaffID:         i64(3),
		BookingDateTime: at,
		DurationMinutes: 60,
		Status:          domain.AppointmentConfirmed,
		IsActive:        true,
	}))

	cases := []struct {
		name     string
		start    time.Time
		duration int
		want     bool
	}{
		{"exact overlap", at, 60, false},
		{"straddles the start", at.Add(-30 * time.Minute), 60, false},
		{"straddles the end", at.Add(30 * time.Minute), 60, false},
		{"contains the booking", at.Add(-30 * time.Minute), 120, false},
		{"back to back before", at.Add(-60 * time.Minute), 60, true},
		{"back to back after", at.Add(60 * time.Minute), 60, true},
		{"different day", at.AddDate(0, 0, 1), 60, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			free, err := repo.IsStaffAvailable(ctx, 3, tc.start, tc.duration, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.want, free)
		})
	}

	t.Run("other staff is unaffected", func(t *testing.T) {
		free, err := repo.IsStaffAvailable(ctx, 4, at, 60, 0)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("own appointment is excluded", func(t *testing.T) {
		free, err := repo.IsStaffAvailable(ctx, 3, at, 60, 1)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("inactive bookings do not block", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &domain.Booking{
			AppointmentID:   2,
			StaffID:         i64(3),
			BookingDateTime: at.AddDate(0, 0, 2),
			DurationMinutes: 60,
			Status:          domain.AppointmentCancelled,
			IsActive:        false,
		}))
		free, err := repo.IsStaffAvailable(ctx, 3, at.AddDate(0, 0, 2), 60, 0)
		require.NoError(t, err)
		assert.True(t, free)
	})
}

func TestBookingRepository_FindActiveMatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	at := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	seed := []domain.Booking{
		{AppointmentID: 1, StaffID: i64(3), ServiceID: i64(5), BookingDateTime: at, DurationMinutes: 60, Status: domain.AppointmentConfirmed, IsActive: true},
		{AppointmentID: 2, StaffID: nil, ServiceID: i64(5), BookingDateTime: at, DurationMinutes: 60, Status: domain.AppointmentPending, IsActive: true},
		{AppointmentID: 3, StaffID: i64(3), ServiceID: i64(5), BookingDateTime: at.Add(time.Hour), DurationMinutes: 60, Status: domain.AppointmentConfirmed, IsActive: true},
	}
	for i := range seed {
		require.NoError(t, repo.Save(ctx, &seed[i]))
	}

	withStaff, err := repo.FindActiveMatch(ctx, i64(3), i64(5), at)
	require.NoError(t, err)
	require.Len(t, withStaff, 1)
	assert.Equal(t, int64(1), withStaff[0].AppointmentID)

	// nil staff matches rows whose staff column is NULL, not any staff.
	unassigned, err := repo.FindActiveMatch(ctx, nil, i64(5), at)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, int64(2), unassigned[0].AppointmentID)
}

func TestServiceHistoryRepository_SaveUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	repo := NewServiceHistoryRepository(db)
	ctx := context.Background()

	h := &domain.ServiceHistory{AppointmentID: 1, Status: domain.AppointmentPending, Notes: "Classic Facial"}
	require.NoError(t, repo.Save(ctx, h))
	require.NotZero(t, h.ID)

	h.Status = domain.AppointmentCancelled
	h.Notes = h.Notes + " | Hủy lịch: khách bận"
	require.NoError(t, repo.Save(ctx, h))

	list, err := repo.ListByAppointment(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.AppointmentCancelled, list[0].Status)
	assert.Contains(t, list[0].Notes, "Hủy lịch")
}
