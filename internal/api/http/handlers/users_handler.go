package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/api/dto"
	"github.com/spec-kit/nexa-sys/internal/service"
)

// UsersHandler administers accounts.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.UserContext(), caller)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	return c.JSON(items)
}

// Create POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.users.Create(c.UserContext(), service.UserCreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return created(c, user.ID, "Usuario creado exitosamente")
}

// Update PUT /api/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.users.Update(c.UserContext(), c.Params("id"), req.ToPatch()); err != nil {
		return err
	}
	return message(c, "Usuario actualizado exitosamente")
}

// SetStatus PATCH /api/users/:id/status.
func (h *UsersHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.UserStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.users.SetActive(c.UserContext(), c.Params("id"), *req.Active); err != nil {
		return err
	}
	return message(c, "Estado de usuario actualizado exitosamente")
}
