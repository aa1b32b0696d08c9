package sqlite_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nanihealth/clinic-management/internal"
	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
	"github.com/nanihealth/clinic-management/internal/staff"
	staffSQLite "github.com/nanihealth/clinic-management/internal/staff/sqlite"
)

func TestStaffSQLite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Staff SQLite Suite")
}

var _ = Describe("Staff SQLite Repository", func() {
	var (
		db       *gorm.DB
		repo     staff.RepositoryAPI
		doctorID int64
	)

	newStaff := func(username, fullName string, roleID *int64) *staffDatamodel.Staff {
		return &staffDatamodel.Staff{
			Username: username,
			Password: "hashed",
			FullName: fullName,
			RoleID:   roleID,
			IsActive: true,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&roleDatamodel.Role{}, &staffDatamodel.Staff{})
		Expect(err).NotTo(HaveOccurred())

		doctorRole := &roleDatamodel.Role{Name: "Doctor"}
		Expect(db.Create(doctorRole).Error).To(Succeed())
		doctorID = doctorRole.ID

		repo = staffSQLite.NewStaffRepository(db)
	})

	Describe("Create", func() {
		It("should create a staff member with a role", func() {
			s := newStaff("dr.jones", "Sarah Jones", &doctorID)

			err := repo.Create(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.ID).To(BeNumerically(">", 0))
			Expect(s.CreatedAt).NotTo(BeZero())
		})

		It("should allow a staff member without a role", func() {
			err := repo.Create(newStaff("frontdesk", "Front Desk", nil))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a duplicate username", func() {
			Expect(repo.Create(newStaff("dr.jones", "Sarah Jones", &doctorID))).To(Succeed())

			err := repo.Create(newStaff("dr.jones", "Another Jones", nil))
			Expect(errors.Is(err, internal.ErrDuplicateUsername)).To(BeTrue())
		})

		It("should reject a role that does not exist", func() {
			missing := int64(999)
			err := repo.Create(newStaff("dr.void", "No Role", &missing))
			Expect(err).To(HaveOccurred())

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConstraint))
		})
	})

	Describe("ListActive", func() {
		BeforeEach(func() {
			Expect(repo.Create(newStaff("dr.zeta", "Zeta Omar", &doctorID))).To(Succeed())
			Expect(repo.Create(newStaff("dr.alpha", "Alpha Yim", &doctorID))).To(Succeed())

			former := newStaff("dr.gone", "Gone Away", nil)
			Expect(repo.Create(former)).To(Succeed())
			Expect(repo.Deactivate(former.ID)).To(Succeed())
		})

		It("should return active staff ordered by full name", func() {
			rows, err := repo.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[0].FullName).To(Equal("Alpha Yim"))
			Expect(rows[1].FullName).To(Equal("Zeta Omar"))
		})

		It("should resolve role names on each row", func() {
			rows, err := repo.ListActive()
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0].RoleName).To(Equal("Doctor"))
		})

		It("should hide deactivated staff", func() {
			rows, err := repo.ListActive()
			Expect(err).NotTo(HaveOccurred())
			for _, row := range rows {
				Expect(row.Username).NotTo(Equal("dr.gone"))
			}
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			jane := newStaff("jane.doe", "Jane Doe", &doctorID)
			jane.Email = "jane@clinic.local"
			Expect(repo.Create(jane)).To(Succeed())
			Expect(repo.Create(newStaff("bob", "Bob Stone", nil))).To(Succeed())
		})

		It("should match case-insensitively on full name", func() {
			rows, err := repo.Search("jane")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].FullName).To(Equal("Jane Doe"))
		})

		It("should match a substring anywhere in the name", func() {
			rows, err := repo.Search("an")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].FullName).To(Equal("Jane Doe"))
		})

		It("should match on email", func() {
			rows, err := repo.Search("clinic.local")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})

		It("should return empty for no match", func() {
			rows, err := repo.Search("nobody")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("should not match deactivated staff", func() {
			former := newStaff("old.jane", "Jane Former", nil)
			Expect(repo.Create(former)).To(Succeed())
			Expect(repo.Deactivate(former.ID)).To(Succeed())

			rows, err := repo.Search("jane")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].Username).To(Equal("jane.doe"))
		})
	})

	Describe("Update", func() {
		var existing *staffDatamodel.Staff

		BeforeEach(func() {
			existing = newStaff("dr.jones", "Sarah Jones", &doctorID)
			Expect(repo.Create(existing)).To(Succeed())
		})

		It("should replace the stored row", func() {
			existing.FullName = "Sarah Jones-Lee"
			existing.Specialty = "Cardiology"

			Expect(repo.Update(existing)).To(Succeed())

			stored, err := repo.GetByID(existing.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.FullName).To(Equal("Sarah Jones-Lee"))
			Expect(stored.Specialty).To(Equal("Cardiology"))
		})

		It("should keep the username when unchanged", func() {
			existing.Phone = "555-0101"
			Expect(repo.Update(existing)).To(Succeed())
		})

		It("should reject a username taken by another member", func() {
			Expect(repo.Create(newStaff("dr.taken", "Taken Name", nil))).To(Succeed())

			existing.Username = "dr.taken"
			err := repo.Update(existing)
			Expect(errors.Is(err, internal.ErrDuplicateUsername)).To(BeTrue())
		})

		It("should return not found for a missing id", func() {
			ghost := newStaff("ghost", "Ghost", nil)
			ghost.ID = 999
			err := repo.Update(ghost)
			Expect(errors.Is(err, internal.ErrStaffNotFound)).To(BeTrue())
		})
	})

	Describe("Deactivate", func() {
		It("should keep the row but mark it inactive", func() {
			s := newStaff("dr.jones", "Sarah Jones", &doctorID)
			Expect(repo.Create(s)).To(Succeed())

			Expect(repo.Deactivate(s.ID)).To(Succeed())

			stored, err := repo.GetByID(s.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsActive).To(BeFalse())
		})

		It("should return not found for a missing id", func() {
			err := repo.Deactivate(999)
			Expect(errors.Is(err, internal.ErrStaffNotFound)).To(BeTrue())
		})
	})
})
