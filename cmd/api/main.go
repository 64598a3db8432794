package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beautyspa/internal/config"
	"beautyspa/internal/database"
	"beautyspa/internal/mail"
	"beautyspa/internal/middleware"
	"beautyspa/internal/modules/appointment"
	"beautyspa/internal/modules/stats"
	jwtsvc "beautyspa/internal/pkg/jwt"
	"beautyspa/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	txManager := repository.NewTxManager(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	historyRepo := repository.NewServiceHistoryRepository(db)
	slotRepo := repository.NewTimeSlotRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	mailer := mail.New(cfg, logger)

	appointmentService := appointment.NewService(
		appointment.Stores{
			Appointments: appointmentRepo,
			Bookings:     bookingRepo,
			Histories:    historyRepo,
			Slots:        slotRepo,
			Services:     serviceRepo,
			Staff:        staffRepo,
			Customers:    customerRepo,
		},
		mailer,
		txManager,
		cfg.Location,
		logger,
	)
	appointmentHandler := appointment.NewHandler(appointmentService)

	statsService := stats.NewService(appointmentRepo, cfg.Location)
	statsHandler := stats.NewHandler(statsService)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j))
		{
			appointmentHandler.RegisterRoutes(admin)
			statsHandler.RegisterRoutes(admin)
		}
	}

	logger.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
