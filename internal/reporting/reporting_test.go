package reporting_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appointmentDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/appointment"
	financeDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/finance"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	"github.com/nanihealth/clinic-management/internal/reporting"
	"github.com/nanihealth/clinic-management/internal/storage"
)

func TestReporting(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Reporting Suite")
}

var _ = Describe("Reporting Service", func() {
	var (
		db      *gorm.DB
		service *reporting.Service
		ctx     context.Context
	)

	onDay := func(day string) time.Time {
		d, err := time.ParseInLocation("2006-01-02", day, time.UTC)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	payment := func(day string, amount float64, patientID int64) {
		Expect(db.Create(&financeDatamodel.FinancialRecord{
			Date:            onDay(day),
			Amount:          amount,
			PatientID:       patientID,
			TransactionType: financeDatamodel.TransactionTypePayment,
		}).Error).To(Succeed())
	}

	appointmentWith := func(day string, status string, patientID int64) {
		Expect(db.Create(&appointmentDatamodel.Appointment{
			PatientID:       patientID,
			AppointmentDate: onDay(day).Add(10 * time.Hour),
			Status:          status,
		}).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		// one connection keeps the in-memory database shared between
		// gorm writes and the sqlx aggregate queries
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(storage.AutoMigrate(db)).To(Succeed())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service, err = reporting.NewService(db, "sqlite3", logger)
		Expect(err).NotTo(HaveOccurred())

		ctx = context.Background()
	})

	Describe("RevenueSummary", func() {
		var patientID int64

		BeforeEach(func() {
			p := &patientDatamodel.Patient{Name: "Jane Doe", Contact: "555-0100"}
			Expect(db.Create(p).Error).To(Succeed())
			patientID = p.ID

			payment("2026-08-01", 100, patientID)
			payment("2026-08-01", 50, patientID)
			payment("2026-08-10", 200, patientID)
		})

		It("should sum payments per day", func() {
			summary := service.RevenueSummary(ctx, "", "")
			Expect(summary.Total).To(Equal(350.0))
			Expect(summary.Days).To(HaveLen(2))
			Expect(summary.Days[0].Total).To(Equal(150.0))
			Expect(summary.Days[1].Total).To(Equal(200.0))
		})

		It("should honor an inclusive range", func() {
			summary := service.RevenueSummary(ctx, "2026-08-01", "2026-08-10")
			Expect(summary.Total).To(Equal(350.0))

			summary = service.RevenueSummary(ctx, "2026-08-02", "2026-08-09")
			Expect(summary.Total).To(Equal(0.0))
			Expect(summary.Days).To(BeEmpty())
		})

		It("should return a zero summary on an empty store", func() {
			Expect(db.Exec("DELETE FROM finances").Error).To(Succeed())

			summary := service.RevenueSummary(ctx, "", "")
			Expect(summary.Total).To(Equal(0.0))
			Expect(summary.Days).NotTo(BeNil())
		})
	})

	Describe("AppointmentStatusCounts", func() {
		var patientID int64

		BeforeEach(func() {
			p := &patientDatamodel.Patient{Name: "Jane Doe", Contact: "555-0100"}
			Expect(db.Create(p).Error).To(Succeed())
			patientID = p.ID

			appointmentWith("2026-08-01", appointmentDatamodel.StatusScheduled, patientID)
			appointmentWith("2026-08-01", appointmentDatamodel.StatusCompleted, patientID)
			appointmentWith("2026-08-02", appointmentDatamodel.StatusCompleted, patientID)
		})

		It("should count appointments per status", func() {
			counts := service.AppointmentStatusCounts(ctx, "")
			Expect(counts).To(HaveLen(2))

			byStatus := map[string]int64{}
			for _, c := range counts {
				byStatus[c.Status] = c.Count
			}
			Expect(byStatus[appointmentDatamodel.StatusScheduled]).To(Equal(int64(1)))
			Expect(byStatus[appointmentDatamodel.StatusCompleted]).To(Equal(int64(2)))
		})

		It("should restrict counts to one date", func() {
			counts := service.AppointmentStatusCounts(ctx, "2026-08-02")
			Expect(counts).To(HaveLen(1))
			Expect(counts[0].Status).To(Equal(appointmentDatamodel.StatusCompleted))
			Expect(counts[0].Count).To(Equal(int64(1)))
		})
	})
})
