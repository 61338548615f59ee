package dto

import (
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// LoginRequest payload for login.
type LoginRequest struct {
	User string `json:"user" validate:"required,min=3,max=100"`
	Pass string `json:"pass" validate:"required,min=6"`
}

// UserInfo is the identity returned alongside a token.
type UserInfo struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// LoginResponse standard response for auth endpoints.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserInfo  UserInfo  `json:"user_info"`
}

// SessionResponse echoes the verified token identity.
type SessionResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// NewUserInfo maps an identity.
func NewUserInfo(identity domain.Identity) UserInfo {
	return UserInfo{ID: identity.ID, Username: identity.Username, Email: identity.Email, Role: identity.Role}
}
