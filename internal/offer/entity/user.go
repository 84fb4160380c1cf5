package entity

// User roles
const (
	RoleManager  = "Manager"
	RoleEngineer = "Engineer"
)

// User is an account allowed to sign in. PasswordHash is a bcrypt hash.
type User struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}
