package entities

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User approval statuses. New registrations start pending and cannot log
// in until an administrator approves them.
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
	UserStatusRejected = "rejected"
)

// AdminUsername is the built-in administrator account seeded at startup.
// It can never be deleted or demoted.
const AdminUsername = "admin"

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
