package service

import (
	"errors"

	"github.com/spec-kit/nexa-sys/internal/repository"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const (
	msgValidation        = "Error de validación"
	msgInvalidTaskStatus = "El estado debe ser pendiente, en_progreso, completada o aprobada"
)

// validationError builds the 400 returned for rejected input; each problem
// is listed under details.errors.
func validationError(problems ...string) error {
	return apperrors.NewValidationError(msgValidation, map[string]any{"errors": problems})
}

func isInvalidReference(err error) bool {
	return errors.Is(err, repository.ErrInvalidReference)
}
