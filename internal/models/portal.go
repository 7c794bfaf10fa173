package models

// UserLevel is a portal access role.
type UserLevel string

const (
	LevelAdmin   UserLevel = "admin"
	LevelManager UserLevel = "manager"
	LevelUser    UserLevel = "user"
	LevelViewer  UserLevel = "viewer"
)

// User is a portal user.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       UserLevel `json:"role"`
	Department string    `json:"department"`
}

// Module is a dashboard section shown on the portal home page.
type Module struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Icon         string      `json:"icon"`
	Color        string      `json:"color"`
	Href         string      `json:"href"`
	AllowedRoles []UserLevel `json:"allowed_roles"`
}

// Allows reports whether the module is visible to the given role.
func (m Module) Allows(role UserLevel) bool {
	for _, r := range m.AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}
