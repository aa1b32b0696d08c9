package sqlite

import (
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
	"github.com/nanihealth/clinic-management/internal/staff"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) staff.RepositoryAPI {
	return &StaffRepository{db: db}
}

const listColumns = "staff.id, staff.username, staff.full_name, " +
	"COALESCE(roles.name, '') AS role_name, staff.email, staff.phone, " +
	"staff.specialty, staff.created_at"

func (r *StaffRepository) Create(data *staffDatamodel.Staff) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&staffDatamodel.Staff{}).Where("username = ?", data.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrDuplicateUsername
		}
		if err := checkRoleExists(tx, data.RoleID); err != nil {
			return err
		}
		return tx.Create(data).Error
	})
}

func (r *StaffRepository) GetByID(id int64) (*staffDatamodel.Staff, error) {
	var data staffDatamodel.Staff
	err := r.db.Where("id = ?", id).First(&data).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrStaffNotFound
		}
		return nil, err
	}
	return &data, nil
}

func (r *StaffRepository) ListActive() ([]*staff.Row, error) {
	var rows []*staff.Row
	err := r.db.Table("staff").
		Select(listColumns).
		Joins("LEFT JOIN roles ON roles.id = staff.role_id").
		Where("staff.is_active = ?", true).
		Order("staff.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *StaffRepository) Search(term string) ([]*staff.Row, error) {
	pattern := "%" + term + "%"
	var rows []*staff.Row
	err := r.db.Table("staff").
		Select(listColumns).
		Joins("LEFT JOIN roles ON roles.id = staff.role_id").
		Where("staff.is_active = ?", true).
		Where(
			"LOWER(staff.full_name) LIKE LOWER(?) OR LOWER(staff.username) LIKE LOWER(?) OR LOWER(staff.email) LIKE LOWER(?) OR LOWER(COALESCE(roles.name, '')) LIKE LOWER(?)",
			pattern, pattern, pattern, pattern,
		).
		Order("staff.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *StaffRepository) Update(data *staffDatamodel.Staff) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing staffDatamodel.Staff
		if err := tx.Where("id = ?", data.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrStaffNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&staffDatamodel.Staff{}).
			Where("username = ? AND id <> ?", data.Username, data.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrDuplicateUsername
		}
		if err := checkRoleExists(tx, data.RoleID); err != nil {
			return err
		}
		// full-row replace
		return tx.Model(&staffDatamodel.Staff{}).Where("id = ?", data.ID).
			Select("username", "password", "full_name", "role_id", "email", "phone", "specialty", "is_active").
			Updates(map[string]interface{}{
				"username":  data.Username,
				"password":  data.Password,
				"full_name": data.FullName,
				"role_id":   data.RoleID,
				"email":     data.Email,
				"phone":     data.Phone,
				"specialty": data.Specialty,
				"is_active": data.IsActive,
			}).Error
	})
}

func (r *StaffRepository) Deactivate(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&staffDatamodel.Staff{}).Where("id = ?", id).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrStaffNotFound
		}
		return nil
	})
}

func checkRoleExists(tx *gorm.DB, roleID *int64) error {
	if roleID == nil {
		return nil
	}
	var count int64
	if err := tx.Model(&roleDatamodel.Role{}).Where("id = ?", *roleID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return internal.NewConstraintError("referenced role does not exist", internal.ErrCodeRoleNotFound)
	}
	return nil
}
