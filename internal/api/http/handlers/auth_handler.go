package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/api/dto"
	"github.com/spec-kit/nexa-sys/internal/service"
)

// AuthHandler exposes login and session introspection.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.User, req.Pass)
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		UserInfo:  dto.NewUserInfo(result.User),
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	return c.JSON(dto.SessionResponse{ID: caller.ID, Username: caller.Username, Role: caller.Role})
}
