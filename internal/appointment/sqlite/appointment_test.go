package sqlite_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nanihealth/clinic-management/internal"
	"github.com/nanihealth/clinic-management/internal/appointment"
	appointmentSQLite "github.com/nanihealth/clinic-management/internal/appointment/sqlite"
	appointmentDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/appointment"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
)

func TestAppointmentSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Appointment SQLite Suite")
}

var _ = Describe("Appointment SQLite Repository", func() {
	var (
		db        *gorm.DB
		repo      appointment.RepositoryAPI
		patientID int64
		staffID   int64
	)

	at := func(day string, hour int) time.Time {
		d, err := time.ParseInLocation(appointment.DateLayout, day, time.UTC)
		Expect(err).NotTo(HaveOccurred())
		return d.Add(time.Duration(hour) * time.Hour)
	}

	newAppointment := func(day string, hour int, assignedTo *int64) *appointmentDatamodel.Appointment {
		return &appointmentDatamodel.Appointment{
			PatientID:       patientID,
			AppointmentDate: at(day, hour),
			Reason:          "checkup",
			Status:          appointmentDatamodel.StatusScheduled,
			AssignedToID:    assignedTo,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&staffDatamodel.Staff{},
			&patientDatamodel.Patient{},
			&appointmentDatamodel.Appointment{},
		)
		Expect(err).NotTo(HaveOccurred())

		p := &patientDatamodel.Patient{Name: "Jane Doe", Contact: "555-0100"}
		Expect(db.Create(p).Error).To(Succeed())
		patientID = p.ID

		s := &staffDatamodel.Staff{Username: "dr.siti", Password: "hashed", FullName: "Siti Rahma", IsActive: true}
		Expect(db.Create(s).Error).To(Succeed())
		staffID = s.ID

		repo = appointmentSQLite.NewAppointmentRepository(db)
	})

	Describe("Create", func() {
		It("should schedule an appointment", func() {
			a := newAppointment("2026-09-01", 10, &staffID)

			err := repo.Create(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(BeNumerically(">", 0))
		})

		It("should reject a patient that does not exist", func() {
			a := newAppointment("2026-09-01", 10, nil)
			a.PatientID = 999

			err := repo.Create(a)
			Expect(err).To(HaveOccurred())

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConstraint))
		})

		It("should reject an assigned staff member that does not exist", func() {
			missing := int64(999)
			err := repo.Create(newAppointment("2026-09-01", 10, &missing))
			Expect(err).To(HaveOccurred())
		})

		It("should reject an unknown status value", func() {
			a := newAppointment("2026-09-01", 10, nil)
			a.Status = "Pending"

			err := repo.Create(a)
			Expect(err).To(HaveOccurred())

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidStatus))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAppointment("2026-09-01", 9, &staffID))).To(Succeed())
			Expect(repo.Create(newAppointment("2026-09-01", 14, nil))).To(Succeed())
			Expect(repo.Create(newAppointment("2026-09-02", 10, &staffID))).To(Succeed())
		})

		It("should return all appointments ordered by time", func() {
			rows, err := repo.List(appointment.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0].AppointmentDate.Before(rows[1].AppointmentDate)).To(BeTrue())
		})

		It("should resolve patient and staff names", func() {
			rows, err := repo.List(appointment.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].PatientName).To(Equal("Jane Doe"))
			Expect(rows[0].StaffName).To(Equal("Siti Rahma"))
			Expect(rows[1].StaffName).To(Equal(""))
		})

		It("should filter by a single calendar date", func() {
			rows, err := repo.List(appointment.Filter{Date: "2026-09-01"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})

		It("should keep an early morning appointment on its calendar day whatever the process timezone", func() {
			jakarta, err := time.LoadLocation("Asia/Jakarta")
			Expect(err).NotTo(HaveOccurred())
			original := time.Local
			time.Local = jakarta
			DeferCleanup(func() { time.Local = original })

			Expect(repo.Create(newAppointment("2026-09-03", 2, nil))).To(Succeed())

			rows, err := repo.List(appointment.Filter{Date: "2026-09-03"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})

		It("should filter by assigned staff member", func() {
			rows, err := repo.List(appointment.Filter{StaffID: &staffID})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})

		It("should combine date and staff filters", func() {
			rows, err := repo.List(appointment.Filter{Date: "2026-09-01", StaffID: &staffID})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})

		It("should return empty for a date with no appointments", func() {
			rows, err := repo.List(appointment.Filter{Date: "2026-12-25"})
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("ListInRange", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAppointment("2026-09-01", 9, nil))).To(Succeed())
			Expect(repo.Create(newAppointment("2026-09-03", 9, nil))).To(Succeed())
			Expect(repo.Create(newAppointment("2026-09-05", 9, nil))).To(Succeed())
		})

		It("should include both boundary dates", func() {
			rows, err := repo.ListInRange("2026-09-01", "2026-09-05")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
		})

		It("should exclude dates outside the range", func() {
			rows, err := repo.ListInRange("2026-09-02", "2026-09-04")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	Describe("Update", func() {
		var existing *appointmentDatamodel.Appointment

		BeforeEach(func() {
			existing = newAppointment("2026-09-01", 10, nil)
			Expect(repo.Create(existing)).To(Succeed())
		})

		It("should replace the stored row", func() {
			existing.Status = appointmentDatamodel.StatusCompleted
			existing.Reason = "follow-up"

			Expect(repo.Update(existing)).To(Succeed())

			stored, err := repo.GetByID(existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal(appointmentDatamodel.StatusCompleted))
			Expect(stored.Reason).To(Equal("follow-up"))
		})

		It("should reject an unknown status", func() {
			existing.Status = "Maybe"
			err := repo.Update(existing)
			Expect(err).To(HaveOccurred())
		})

		It("should return not found for a missing id", func() {
			ghost := newAppointment("2026-09-01", 10, nil)
			ghost.ID = 999
			err := repo.Update(ghost)
			Expect(errors.Is(err, internal.ErrAppointmentNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should remove the appointment", func() {
			a := newAppointment("2026-09-01", 10, nil)
			Expect(repo.Create(a)).To(Succeed())

			Expect(repo.Delete(a.ID)).To(Succeed())

			_, err := repo.GetByID(a.ID)
			Expect(errors.Is(err, internal.ErrAppointmentNotFound)).To(BeTrue())
		})

		It("should return not found for a missing id", func() {
			err := repo.Delete(999)
			Expect(errors.Is(err, internal.ErrAppointmentNotFound)).To(BeTrue())
		})
	})
})
