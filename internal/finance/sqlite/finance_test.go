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
	financeDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/finance"
	patientDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/patient"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
	"github.com/nanihealth/clinic-management/internal/finance"
	financeSQLite "github.com/nanihealth/clinic-management/internal/finance/sqlite"
)

func TestFinanceSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Finance SQLite Suite")
}

var _ = Describe("Finance SQLite Repository", func() {
	var (
		db         *gorm.DB
		repo       finance.RepositoryAPI
		patientID  int64
		recorderID int64
	)

	onDay := func(day string) time.Time {
		d, err := time.ParseInLocation(finance.DateLayout, day, time.UTC)
		Expect(err).NotTo(HaveOccurred())
		return d
	}

	newRecord := func(day string, amount float64) *financeDatamodel.FinancialRecord {
		return &financeDatamodel.FinancialRecord{
			Date:            onDay(day),
			Amount:          amount,
			Description:     "consultation fee",
			PatientID:       patientID,
			RecordedByID:    &recorderID,
			TransactionType: financeDatamodel.TransactionTypePayment,
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
			&financeDatamodel.FinancialRecord{},
		)
		Expect(err).NotTo(HaveOccurred())

		p := &patientDatamodel.Patient{Name: "Jane Doe", Contact: "555-0100"}
		Expect(db.Create(p).Error).To(Succeed())
		patientID = p.ID

		s := &staffDatamodel.Staff{Username: "admin", Password: "hashed", FullName: "Clinic Admin", IsActive: true}
		Expect(db.Create(s).Error).To(Succeed())
		recorderID = s.ID

		repo = financeSQLite.NewFinanceRepository(db)
	})

	Describe("Create", func() {
		It("should record a payment", func() {
			rec := newRecord("2026-08-01", 150.00)

			err := repo.Create(rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ID).To(BeNumerically(">", 0))
		})

		It("should record a payment without a recorder", func() {
			rec := newRecord("2026-08-01", 150.00)
			rec.RecordedByID = nil
			Expect(repo.Create(rec)).To(Succeed())
		})

		It("should reject a patient that does not exist", func() {
			rec := newRecord("2026-08-01", 150.00)
			rec.PatientID = 999

			err := repo.Create(rec)
			Expect(err).To(HaveOccurred())

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConstraint))
		})

		It("should reject a recorder that does not exist", func() {
			missing := int64(999)
			rec := newRecord("2026-08-01", 150.00)
			rec.RecordedByID = &missing

			err := repo.Create(rec)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(repo.Create(newRecord("2026-08-01", 100))).To(Succeed())
			Expect(repo.Create(newRecord("2026-08-10", 200))).To(Succeed())
			Expect(repo.Create(newRecord("2026-08-20", 300))).To(Succeed())
		})

		It("should return all records when no range is given", func() {
			rows, err := repo.List("", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
		})

		It("should order records by date ascending", func() {
			rows, err := repo.List("", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].Amount).To(Equal(100.0))
			Expect(rows[2].Amount).To(Equal(300.0))
		})

		It("should resolve patient and recorder names", func() {
			rows, err := repo.List("", "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].PatientName).To(Equal("Jane Doe"))
			Expect(rows[0].RecordedByName).To(Equal("Clinic Admin"))
		})

		It("should include both boundary dates of a range", func() {
			rows, err := repo.List("2026-08-01", "2026-08-20")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
		})

		It("should exclude records outside the range", func() {
			rows, err := repo.List("2026-08-05", "2026-08-15")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Amount).To(Equal(200.0))
		})

		It("should return empty for a range with no records", func() {
			rows, err := repo.List("2026-09-01", "2026-09-30")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		var existing *financeDatamodel.FinancialRecord

		BeforeEach(func() {
			existing = newRecord("2026-08-01", 100)
			Expect(repo.Create(existing)).To(Succeed())
		})

		It("should replace the stored row", func() {
			existing.Amount = 120
			existing.Description = "adjusted fee"

			Expect(repo.Update(existing)).To(Succeed())

			stored, err := repo.GetByID(existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Amount).To(Equal(120.0))
			Expect(stored.Description).To(Equal("adjusted fee"))
		})

		It("should return not found for a missing id", func() {
			ghost := newRecord("2026-08-01", 100)
			ghost.ID = 999
			err := repo.Update(ghost)
			Expect(errors.Is(err, internal.ErrTransactionNotFound)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		It("should remove the record", func() {
			rec := newRecord("2026-08-01", 100)
			Expect(repo.Create(rec)).To(Succeed())

			Expect(repo.Delete(rec.ID)).To(Succeed())

			_, err := repo.GetByID(rec.ID)
			Expect(errors.Is(err, internal.ErrTransactionNotFound)).To(BeTrue())
		})

		It("should return not found for a missing id", func() {
			err := repo.Delete(999)
			Expect(errors.Is(err, internal.ErrTransactionNotFound)).To(BeTrue())
		})
	})
})
