package domain

// User roles.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// User is an account on the content API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may manage listings.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
