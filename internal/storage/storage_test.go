package storage_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nanihealth/clinic-management/internal"
	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
	"github.com/nanihealth/clinic-management/internal/storage"
)

func TestStorage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Suite")
}

var _ = Describe("Storage", func() {
	var db *gorm.DB

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("AutoMigrate", func() {
		It("should create all store tables", func() {
			Expect(storage.AutoMigrate(db)).To(Succeed())

			for _, table := range []string{"roles", "staff", "patients", "appointments", "medical_records", "finances"} {
				Expect(db.Migrator().HasTable(table)).To(BeTrue(), "missing table %s", table)
			}
		})

		It("should be safe to run twice", func() {
			Expect(storage.AutoMigrate(db)).To(Succeed())
			Expect(storage.AutoMigrate(db)).To(Succeed())
		})
	})

	Describe("SeedRoles", func() {
		BeforeEach(func() {
			Expect(storage.AutoMigrate(db)).To(Succeed())
		})

		It("should insert the default roles", func() {
			Expect(storage.SeedRoles(db)).To(Succeed())

			var count int64
			Expect(db.Model(&roleDatamodel.Role{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(4)))
		})

		It("should not duplicate roles when run again", func() {
			Expect(storage.SeedRoles(db)).To(Succeed())
			Expect(storage.SeedRoles(db)).To(Succeed())

			var count int64
			Expect(db.Model(&roleDatamodel.Role{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(4)))
		})

		It("should keep roles added by operators", func() {
			Expect(storage.SeedRoles(db)).To(Succeed())
			Expect(db.Create(&roleDatamodel.Role{Name: "Lab Technician"}).Error).To(Succeed())

			Expect(storage.SeedRoles(db)).To(Succeed())

			var count int64
			Expect(db.Model(&roleDatamodel.Role{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(5)))
		})
	})

	Describe("WrapWriteError", func() {
		It("should pass through a nil error", func() {
			Expect(storage.WrapWriteError(nil, "ignored")).To(BeNil())
		})

		It("should pass structured errors through unchanged", func() {
			err := storage.WrapWriteError(internal.ErrPatientNotFound, "failed to update patient")
			Expect(errors.Is(err, internal.ErrPatientNotFound)).To(BeTrue())
		})

		It("should map a lock timeout to storage unavailable", func() {
			err := storage.WrapWriteError(errors.New("database is locked"), "failed to create patient")

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeStorage))
		})

		It("should wrap unknown errors as internal", func() {
			err := storage.WrapWriteError(errors.New("boom"), "failed to create patient")

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
			Expect(appErr.Message).To(Equal("failed to create patient"))
		})
	})

	Describe("IsBusy", func() {
		It("should recognize sqlite lock errors", func() {
			Expect(storage.IsBusy(errors.New("database is locked"))).To(BeTrue())
			Expect(storage.IsBusy(errors.New("SQLITE_BUSY: database is busy"))).To(BeTrue())
		})

		It("should ignore other errors", func() {
			Expect(storage.IsBusy(errors.New("syntax error"))).To(BeFalse())
			Expect(storage.IsBusy(nil)).To(BeFalse())
		})
	})
})
