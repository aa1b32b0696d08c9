package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
	"github.com/nanihealth/clinic-management/internal/appointment"
	appointmentRepo "github.com/nanihealth/clinic-management/internal/appointment/sqlite"
	"github.com/nanihealth/clinic-management/internal/core/events"
	"github.com/nanihealth/clinic-management/internal/finance"
	financeRepo "github.com/nanihealth/clinic-management/internal/finance/sqlite"
	"github.com/nanihealth/clinic-management/internal/medicalrecord"
	medicalRecordRepo "github.com/nanihealth/clinic-management/internal/medicalrecord/sqlite"
	"github.com/nanihealth/clinic-management/internal/patient"
	patientRepo "github.com/nanihealth/clinic-management/internal/patient/sqlite"
	"github.com/nanihealth/clinic-management/internal/reporting"
	"github.com/nanihealth/clinic-management/internal/role"
	roleRepo "github.com/nanihealth/clinic-management/internal/role/sqlite"
	"github.com/nanihealth/clinic-management/internal/staff"
	staffRepo "github.com/nanihealth/clinic-management/internal/staff/sqlite"
	"github.com/nanihealth/clinic-management/internal/storage"
	"github.com/nanihealth/clinic-management/internal/transport/rest"
	"github.com/nanihealth/clinic-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to access connection pool: %v\n", err)
		os.Exit(1)
	}
	rest.RegisterAllRoutes(deps.Router, sqlDB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Env, config.Logging.Level)
	log := logger.Default()

	db, err := storage.Open(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := storage.SeedRoles(db); err != nil {
		return nil, fmt.Errorf("failed to seed roles: %w", err)
	}

	bus := events.NewBus(log)
	bus.Subscribe(events.EventTypeEntityChanged, func(ctx context.Context, event events.Event) error {
		if changed, ok := event.(*events.EntityChangedEvent); ok {
			log.Info("entity changed", "entity", changed.Entity, "entity_id", changed.EntityID, "op", changed.Op)
		}
		return nil
	})

	roleService := role.NewService(roleRepo.NewRoleRepository(db), bus, log)
	staffService := staff.NewService(staffRepo.NewStaffRepository(db), bus, log)
	patientService := patient.NewService(patientRepo.NewPatientRepository(db), bus, log)
	appointmentService := appointment.NewService(appointmentRepo.NewAppointmentRepository(db), bus, log)
	medicalRecordService := medicalrecord.NewService(medicalRecordRepo.NewMedicalRecordRepository(db), bus, log)
	financeService := finance.NewService(financeRepo.NewFinanceRepository(db), bus, log)

	reportingService, err := reporting.NewService(db, sqlxDriverName(config.Database.Driver), log)
	if err != nil {
		return nil, fmt.Errorf("failed to build reporting service: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Router: chi.NewRouter(),
		Handlers: rest.Handlers{
			Role:          role.NewHandler(roleService),
			Staff:         staff.NewHandler(staffService),
			Patient:       patient.NewHandler(patientService),
			Appointment:   appointment.NewHandler(appointmentService),
			MedicalRecord: medicalrecord.NewHandler(medicalRecordService),
			Finance:       finance.NewHandler(financeService),
			Reporting:     reporting.NewHandler(reportingService),
		},
	}, nil
}

// sqlxDriverName maps the configured driver to the name sqlx rebinds by.
func sqlxDriverName(driver string) string {
	if driver == internal.DriverPostgres {
		return "pgx"
	}
	return "sqlite3"
}
