package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"beautyspa/internal/config"
	"beautyspa/internal/database"
	"beautyspa/internal/domain"
	"beautyspa/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (child tables first)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM service_histories")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM time_slots")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM staff")
	db.Exec("DELETE FROM customers")

	ctx := context.Background()
	slots := repository.NewTimeSlotRepository(db)
	services := repository.NewServiceRepository(db)
	staff := repository.NewStaffRepository(db)
	customers := repository.NewCustomerRepository(db)
	appointments := repository.NewAppointmentRepository(db)
	bookings := repository.NewBookingRepository(db)
	histories := repository.NewServiceHistoryRepository(db)

	// ================== TIME SLOTS ==================
	log.Println("Creating time slots...")
	slotSeed := []domain.TimeSlot{
		{Label: "Morning 9:00", StartTime: "09:00", IsActive: true},
		{Label: "Morning 10:30", StartTime: "10:30", IsActive: true},
		{Label: "Midday 12:00", StartTime: "12:00", IsActive: true},
		{Label: "Afternoon 14:00", StartTime: "14:00", IsActive: true},
		{Label: "Afternoon 16:00", StartTime: "16:00", IsActive: true},
		{Label: "Evening 18:00", StartTime: "18:00", IsActive: true},
	}
	for i := range slotSeed {
		if err := slots.Save(ctx, &slotSeed[i]); err != nil {
			log.Fatal("slot seed failed:", err)
		}
	}

	// ================== SERVICES ==================
	log.Println("Creating services...")
	serviceSeed := []domain.SpaService{
		{Name: "Classic Facial", Price: 350000, DurationMinutes: 60, IsActive: true},
		{Name: "Hot Stone Massage", Price: 550000, DurationMinutes: 90, IsActive: true},
		{Name: "Gel Manicure", Price: 200000, DurationMinutes: 45, IsActive: true},
		{Name: "Full Body Scrub", Price: 450000, DurationMinutes: 75, IsActive: true},
		{Name: "Hair Spa Treatment", Price: 300000, DurationMinutes: 60, IsActive: true},
	}
	for i := range serviceSeed {
		if err := services.Save(ctx, &serviceSeed[i]); err != nil {
			log.Fatal("service seed failed:", err)
		}
	}

	// ================== STAFF ==================
	log.Println("Creating staff...")
	staffSeed := []domain.Staff{
		{FullName: "Nguyen Thi Lan", Email: "lan@beautyspa.local", Phone: "+84 90 123 4561", IsActive: true},
		{FullName: "Tran Minh Anh", Email: "anh@beautyspa.local", Phone: "+84 90 123 4562", IsActive: true},
		{FullName: "Le Thu Huong", Email: "huong@beautyspa.local", Phone: "+84 90 123 4563", IsActive: true},
	}
	for i := range staffSeed {
		if err := staff.Save(ctx, &staffSeed[i]); err != nil {
			log.Fatal("staff seed failed:", err)
		}
	}

	// ================== CUSTOMERS ==================
	log.Println("Creating customers...")
	customerSeed := []domain.Customer{
		{FullName: "Pham Quynh Chi", Email: "chi@example.com", PhoneNumber: "0901234567", IsActive: true},
		{FullName: "Hoang Van Nam", Email: "nam@example.com", PhoneNumber: "0907654321", IsActive: true},
		{FullName: "Vu Ngoc Mai", Email: "mai@example.com", PhoneNumber: "0909876543", IsActive: true},
	}
	for i := range customerSeed {
		if err := customers.Save(ctx, &customerSeed[i]); err != nil {
			log.Fatal("customer seed failed:", err)
		}
	}

	// ================== APPOINTMENTS ==================
	log.Println("Creating appointments...")

	type sample struct {
		customer domain.Customer
		service  domain.SpaService
		slot     domain.TimeSlot
		staff    *domain.Staff
		dayDelta int
		status   domain.AppointmentStatus
	}
	samples := []sample{
		// past, completed
		{customerSeed[0], serviceSeed[0], slotSeed[0], &staffSeed[0], -7, domain.AppointmentCompleted},
		{customerSeed[0], serviceSeed[1], slotSeed[3], &staffSeed[1], -3, domain.AppointmentCompleted},
		{customerSeed[1], serviceSeed[2], slotSeed[1], &staffSeed[2], -5, domain.AppointmentCompleted},
		// past, cancelled
		{customerSeed[0], serviceSeed[3], slotSeed[2], nil, -2, domain.AppointmentCancelled},
		// today and upcoming
		{customerSeed[1], serviceSeed[0], slotSeed[4], &staffSeed[0], 0, domain.AppointmentConfirmed},
		{customerSeed[2], serviceSeed[4], slotSeed[5], &staffSeed[1], 1, domain.AppointmentConfirmed},
		{customerSeed[2], serviceSeed[1], slotSeed[0], nil, 3, domain.AppointmentPending},
		{customerSeed[0], serviceSeed[2], slotSeed[3], &staffSeed[2], 5, domain.AppointmentPending},
	}

	now := time.Now().In(cfg.Location)
	for i, s := range samples {
		wall, err := time.Parse("15:04", s.slot.StartTime)
		if err != nil {
			log.Fatal("bad slot start time:", err)
		}
		day := now.AddDate(0, 0, s.dayDelta)
		start := time.Date(day.Year(), day.Month(), day.Day(), wall.Hour(), wall.Minute(), 0, 0, cfg.Location)
		end := start.Add(time.Duration(s.service.DurationMinutes) * time.Minute)

		appt := domain.Appointment{
			FullName:        s.customer.FullName,
			PhoneNumber:     s.customer.PhoneNumber,
			Status:          s.status,
			AppointmentDate: start,
			EndTime:         end,
			SlotID:          &s.slot.ID,
			ServiceID:       &s.service.ID,
			CustomerID:      &s.customer.ID,
			Notes:           fmt.Sprintf("Seed appointment %d", i+1),
			Price:           s.service.Price,
			IsActive:        true,
		}
		if s.staff != nil {
			appt.StaffID = &s.staff.ID
		}
		if err := appointments.Save(ctx, &appt); err != nil {
			log.Fatal("appointment seed failed:", err)
		}

		// Cancelled appointments hold no calendar reservation.
		if s.status != domain.AppointmentCancelled {
			booking := domain.Booking{
				AppointmentID:   appt.ID,
				StaffID:         appt.StaffID,
				ServiceID:       appt.ServiceID,
				BookingDateTime: start,
				DurationMinutes: s.service.DurationMinutes,
				Status:          s.status,
				IsActive:        !s.status.IsTerminal(),
			}
			if err := bookings.Save(ctx, &booking); err != nil {
				log.Fatal("booking seed failed:", err)
			}
		}

		history := domain.ServiceHistory{
			AppointmentID: appt.ID,
			Status:        s.status,
			Notes:         s.service.Name,
		}
		if err := histories.Save(ctx, &history); err != nil {
			log.Fatal("history seed failed:", err)
		}
	}

	log.Println("Seed completed!")
	log.Printf("Slots: %d, services: %d, staff: %d, customers: %d, appointments: %d",
		len(slotSeed), len(serviceSeed), len(staffSeed), len(customerSeed), len(samples))
}
