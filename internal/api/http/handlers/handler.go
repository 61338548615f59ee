package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/api/dto"
	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/service"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const msgInvalidBody = "El cuerpo de la solicitud no es JSON válido"

// bind decodes the JSON body into req and runs its validation tags. An
// empty body decodes as {}.
func bind(c *fiber.Ctx, req any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return dto.ValidationFailed(msgInvalidBody)
		}
	}
	return dto.Validate(req)
}

// actor returns the caller attached by the guard.
func actor(c *fiber.Ctx) (service.Actor, error) {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return service.Actor{}, apperrors.NewUnauthorized("Token no proporcionado")
	}
	return service.Actor{ID: session.ID, Username: session.Username, Role: session.Role}, nil
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.MessageResponse{Message: msg})
}

func created(c *fiber.Ctx, id, msg string) error {
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id, Message: msg})
}
