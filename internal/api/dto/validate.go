package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

// MsgValidation is the top-level message of every rejected payload.
const MsgValidation = "Error de validación"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// empty keeps the current password
	_ = v.RegisterValidation("password_opt", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || utf8.RuneCountInString(s) >= 6
	})
	return v
}

// messages overrides the generic text for a "Struct.field.tag" key.
var messages = map[string]string{
	"LoginRequest.user.required": "El nombre de usuario es requerido",
	"LoginRequest.user.min":      "El nombre de usuario debe tener al menos 3 caracteres",
	"LoginRequest.pass.required": "La contraseña es requerida",
	"LoginRequest.pass.min":      "La contraseña debe tener al menos 6 caracteres",

	"CreateUserRequest.username.required": "El nombre de usuario es requerido",
	"CreateUserRequest.username.min":      "El nombre de usuario debe tener al menos 3 caracteres",
	"CreateUserRequest.email.required":    "El email es requerido",
	"CreateUserRequest.email.email":       "Debe proporcionar un email válido",
	"CreateUserRequest.password.required": "La contraseña es requerida",
	"CreateUserRequest.password.min":      "La contraseña debe tener al menos 6 caracteres",
	"CreateUserRequest.role.required":     "El rol es requerido",
	"CreateUserRequest.role.oneof":        "El rol debe ser admin, manager o user",

	"UpdateUserRequest.password.password_opt": "La contraseña debe tener al menos 6 caracteres",
	"UpdateUserRequest.role.oneof":            "El rol debe ser admin, manager o user",
	"UserStatusRequest.active.required":       "El estado activo es requerido",

	"CreateClientRequest.name.required":  "El nombre es requerido",
	"CreateClientRequest.email.required": "El email es requerido",
	"CreateClientRequest.email.email":    "Debe proporcionar un email válido",

	"CreateFieldRequest.name.required":  "El nombre del campo es requerido",
	"CreateFieldRequest.label.required": "La etiqueta del campo es requerida",
	"CreateFieldRequest.type.required":  "El tipo es requerido",

	"CreateProjectRequest.client_id.required": "El ID del cliente es requerido",
	"CreateProjectRequest.name.required":      "El nombre del proyecto es requerido",

	"CreateTaskRequest.description.required": "La descripción de la tarea es requerida",
	"CreateTaskRequest.assigned_to.required": "Debe asignar la tarea a un usuario",
	"CreateTaskRequest.status.oneof":         msgTaskStatus,
	"TaskStatusRequest.status.required":      "El estado es requerido",
	"TaskStatusRequest.status.oneof":         msgTaskStatus,
}

const msgTaskStatus = "El estado debe ser pendiente, en_progreso, completada o aprobada"

// Validate checks req against its validate tags. Field failures come back as
// a 400 listing one message per field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	problems := make([]string, 0, len(ve))
	for _, fe := range ve {
		problems = append(problems, fieldError(fe))
	}
	return ValidationFailed(problems...)
}

// ValidationFailed builds the 400 returned for rejected input.
func ValidationFailed(problems ...string) error {
	return apperrors.NewValidationError(MsgValidation, map[string]any{"errors": problems})
}

func fieldError(fe validator.FieldError) string {
	if msg, ok := messages[fe.Namespace()+"."+fe.Tag()]; ok {
		return msg
	}
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return field + " debe ser un email válido"
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s no puede exceder %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", field, fe.Tag())
	}
}
