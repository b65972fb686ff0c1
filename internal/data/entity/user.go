package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether role belongs to the closed role set
func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	Base
	Username         string   `db:"username"`
	Email            string   `db:"email"`
	FirstName        string   `db:"first_name"`
	LastName         string   `db:"last_name"`
	Bio              string   `db:"bio"`
	Role             UserRole `db:"role"`
	ConfirmationCode *string  `db:"confirmation_code"` // bcrypt hash, nil until first sign-up
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
