package role

import (
	roleDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/role"
)

// Role is the domain view of a clinic role. Roles are reference data: the
// four defaults are seeded at startup and rows are never deleted.
type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func FromDataModel(r *roleDatamodel.Role) *Role {
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
}
