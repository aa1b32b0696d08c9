package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"github.com/nanihealth/clinic-management/internal/appointment"
	"github.com/nanihealth/clinic-management/internal/finance"
	"github.com/nanihealth/clinic-management/internal/medicalrecord"
	"github.com/nanihealth/clinic-management/internal/patient"
	"github.com/nanihealth/clinic-management/internal/reporting"
	"github.com/nanihealth/clinic-management/internal/role"
	"github.com/nanihealth/clinic-management/internal/staff"
	"github.com/nanihealth/clinic-management/internal/transport/middleware"
	"github.com/nanihealth/clinic-management/internal/transport/swagger"
)

// Handlers bundles every entity handler the store exposes over HTTP.
type Handlers struct {
	Role          *role.Handler
	Staff         *staff.Handler
	Patient       *patient.Handler
	Appointment   *appointment.Handler
	MedicalRecord *medicalrecord.Handler
	Finance       *finance.Handler
	Reporting     *reporting.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: splitOrigins(allowedOrigins),
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/roles", func(rr chi.Router) {
			rr.Post("/", h.Role.CreateRole)
			rr.Get("/", h.Role.ListRoles)
		})

		r.Route("/staff", func(sr chi.Router) {
			sr.Post("/", h.Staff.CreateStaff)
			sr.Get("/", h.Staff.ListStaff) // ?q= searches
			sr.Put("/{id}", h.Staff.UpdateStaff)
			sr.Delete("/{id}", h.Staff.DeleteStaff)
		})

		r.Route("/patients", func(pr chi.Router) {
			pr.Post("/", h.Patient.CreatePatient)
			pr.Get("/", h.Patient.ListPatients) // ?q= searches
			pr.Put("/{id}", h.Patient.UpdatePatient)
			pr.Delete("/{id}", h.Patient.DeletePatient)
		})

		r.Route("/appointments", func(ar chi.Router) {
			ar.Post("/", h.Appointment.CreateAppointment)
			ar.Get("/", h.Appointment.ListAppointments) // ?date= ?staff_id= or ?start=&end=
			ar.Put("/{id}", h.Appointment.UpdateAppointment)
			ar.Delete("/{id}", h.Appointment.DeleteAppointment)
		})

		r.Route("/medical-records", func(mr chi.Router) {
			mr.Post("/", h.MedicalRecord.CreateMedicalRecord)
			mr.Get("/", h.MedicalRecord.ListMedicalRecords) // ?patient_id=
			mr.Put("/{id}", h.MedicalRecord.UpdateMedicalRecord)
			mr.Delete("/{id}", h.MedicalRecord.DeleteMedicalRecord)
		})

		r.Route("/finances", func(fr chi.Router) {
			fr.Post("/", h.Finance.RecordTransaction)
			fr.Get("/", h.Finance.ListTransactions) // ?start=&end=
			fr.Put("/{id}", h.Finance.UpdateTransaction)
			fr.Delete("/{id}", h.Finance.DeleteTransaction)
		})

		r.Route("/reports", func(rp chi.Router) {
			rp.Get("/revenue", h.Reporting.RevenueSummary)
			rp.Get("/appointment-status", h.Reporting.AppointmentStatusCounts)
		})
	})
}

// splitOrigins turns the comma-separated config value into the list the
// CORS middleware expects.
func splitOrigins(allowedOrigins string) []string {
	if allowedOrigins == "" {
		return []string{"*"}
	}
	parts := strings.Split(allowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
