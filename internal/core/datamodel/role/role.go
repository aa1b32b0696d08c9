package role

// Role is clinic reference data: seeded at first run, never deleted by
// normal operation.
type Role struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (Role) TableName() string {
	return "roles"
}

// Default role names ensured at startup, keyed by unique name.
const (
	NameDoctor       = "doctor"
	NameNurse        = "nurse"
	NameAdmin        = "admin"
	NameReceptionist = "receptionist"
)

func DefaultRoles() []Role {
	return []Role{
		{Name: NameDoctor, Description: "Medical doctor responsible for patient care"},
		{Name: NameNurse, Description: "Nursing staff assisting with patient care"},
		{Name: NameAdmin, Description: "Clinic administrator"},
		{Name: NameReceptionist, Description: "Front desk and scheduling"},
	}
}
