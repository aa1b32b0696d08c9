package staff

import "time"

// Staff rows are soft-deleted: is_active=false hides them from listings
// while historical references (medical records, appointments) keep
// resolving to the full name.
type Staff struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"column:username;uniqueIndex;not null"`
	Password  string    `gorm:"column:password;not null"`
	FullName  string    `gorm:"column:full_name;not null"`
	RoleID    *int64    `gorm:"column:role_id"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Specialty string    `gorm:"column:specialty"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Staff) TableName() string {
	return "staff"
}
