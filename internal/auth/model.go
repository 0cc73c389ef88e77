package auth

// Roles an account can hold. Operators sign up as RoleOperator;
// RoleAdmin is granted manually for back-office work.
const (
	RoleOperator = "RESTAURANT"
	RoleAdmin    = "ADMIN"
)

// User is an operator account. Password always holds the bcrypt hash,
// never the plaintext.
type User struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

// Public returns the fields safe to serialize in API responses.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
