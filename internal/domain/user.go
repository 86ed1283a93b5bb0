package domain

// Roles, highest privilege first.
const (
	RoleSuperAdmin = "super_admin"
	RoleStaff      = "staff"
	RoleEmployee   = "employee"
)

// roleLevels is the single ordered-privilege lookup; the HTTP
// authorization middleware and any caller-side gating both consume it
// through RoleAtLeast.
var roleLevels = map[string]int{
	RoleSuperAdmin: 3,
	RoleStaff:      2,
	RoleEmployee:   1,
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	_, ok := roleLevels[role]
	return ok
}

// RoleAtLeast checks if role meets or exceeds the minimum required role.
// Unknown roles rank below every known role.
func RoleAtLeast(role, minimum string) bool {
	return roleLevels[role] >= roleLevels[minimum]
}

type User struct {
	ID          string `db:"id" json:"id"`
	Email       string `db:"email" json:"email"`
	Name        string `db:"name" json:"name"`
	Hash        string `db:"password_hash" json:"-"`
	Role        string `db:"role" json:"role"`
	Department  string `db:"department" json:"department,omitempty"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	Active      bool   `db:"active" json:"active"`
	LastLoginAt string `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}
