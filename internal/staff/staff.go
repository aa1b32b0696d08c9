package staff

import (
	"time"

	staffDatamodel "github.com/nanihealth/clinic-management/internal/core/datamodel/staff"
)

// Staff is the domain view of a clinic employee. The stored password hash
// never leaves the store.
type Staff struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	RoleID    *int64    `json:"role_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Row is the display-ready listing row with the role name pre-joined.
type Row struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	RoleName  string    `json:"role_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(d *staffDatamodel.Staff) *Staff {
	return &Staff{
		ID:        d.ID,
		Username:  d.Username,
		FullName:  d.FullName,
		RoleID:    d.RoleID,
		Email:     d.Email,
		Phone:     d.Phone,
		Specialty: d.Specialty,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
	}
}
