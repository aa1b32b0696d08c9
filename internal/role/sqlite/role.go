package sqlite

import (
	"gorm.io/gorm"

	"github.com/nanihealth/clinic-management/internal"
	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
	"github.com/nanihealth/clinic-management/internal/role"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Create(data *roleDatamodel.Role) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&roleDatamodel.Role{}).Where("name = ?", data.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrDuplicateRole
		}
		return tx.Create(data).Error
	})
}

func (r *RoleRepository) GetAll() ([]*roleDatamodel.Role, error) {
	var roles []*roleDatamodel.Role
	err := r.db.Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByID(id int64) (*roleDatamodel.Role, error) {
	var data roleDatamodel.Role
	err := r.db.Where("id = ?", id).First(&data).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}
	return &data, nil
}
