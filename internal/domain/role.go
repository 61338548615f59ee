package domain

// Role enumerates the privilege levels an identity can hold.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// Roles lists every role from least to most privileged.
var Roles = []Role{RoleUser, RoleManager, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r carries every privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.rank() >= other.rank()
}

func (r Role) rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleManager:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}
