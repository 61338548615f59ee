package dto

import (
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// CreateUserRequest payload for new users.
type CreateUserRequest struct {
	Username string      `json:"username" validate:"required,min=3,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role" validate:"required,oneof=admin manager user"`
}

// UpdateUserRequest is a partial user edit. An empty password keeps the
// current one.
type UpdateUserRequest struct {
	Username *string      `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string      `json:"email" validate:"omitempty,email"`
	Password *string      `json:"password" validate:"omitempty,password_opt"`
	Role     *domain.Role `json:"role" validate:"omitempty,oneof=admin manager user"`
	Active   *bool        `json:"active"`
}

// ToPatch converts the request.
func (r UpdateUserRequest) ToPatch() domain.UserPatch {
	return domain.UserPatch{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		Active:   r.Active,
	}
}

// UserStatusRequest toggles an account.
type UserStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// UserResponse is the public view of an identity.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a user, leaving the credential out.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
