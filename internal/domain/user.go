package domain

import "time"

// User is an identity that can sign in to the system.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary returns the public view of the identity.
func (u *User) Summary() Identity {
	return Identity{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// Identity is the non-secret part of a user handed to callers after login.
type Identity struct {
	ID       string
	Username string
	Email    string
	Role     Role
}

// UserPatch carries a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	Role     *Role
	Active   *bool
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Password == nil && p.Role == nil && p.Active == nil
}
