package staff

type CreateStaffDTO struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FullName  string `json:"full_name"`
	RoleID    *int64 `json:"role_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"`
}

// UpdateStaffDTO carries the full replacement row. An empty password keeps
// the stored hash.
type UpdateStaffDTO struct {
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	FullName  string `json:"full_name"`
	RoleID    *int64 `json:"role_id,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	IsActive  bool   `json:"is_active"`
}
