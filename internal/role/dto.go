package role

type CreateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
