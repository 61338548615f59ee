package service

import (
	"context"
	"strings"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const (
	msgFieldNotFound  = "Campo no encontrado"
	msgFieldDuplicate = "El campo ya existe"
	msgFieldKey       = "El nombre debe comenzar con letra minúscula y contener solo letras, números y guiones bajos"
)

// fieldTypes lists the input types each entity accepts, with the message
// returned for anything else.
var fieldTypes = map[domain.FieldEntity]struct {
	allowed []domain.FieldType
	message string
}{
	domain.FieldEntityClient: {
		allowed: []domain.FieldType{
			domain.FieldTypeText, domain.FieldTypeNumber, domain.FieldTypeDate,
			domain.FieldTypeLongText, domain.FieldTypeSelect,
		},
		message: "El tipo debe ser text, number, date, longtext o select",
	},
	domain.FieldEntityProject: {
		allowed: []domain.FieldType{
			domain.FieldTypeText, domain.FieldTypeNumber, domain.FieldTypeDate,
			domain.FieldTypeURL, domain.FieldTypeEmail, domain.FieldTypeSelect,
			domain.FieldTypeMultiSelect, domain.FieldTypeTextarea, domain.FieldTypeCheckbox,
		},
		message: "El tipo debe ser text, number, date, url, email, select, multiselect, textarea o checkbox",
	},
}

// FieldService manages custom field definitions of clients and projects.
type FieldService struct {
	fields repository.FieldDefinitionRepository
}

// FieldCreateInput describes a new field definition. Name is normalised
// into the storage key.
type FieldCreateInput struct {
	Entity     domain.FieldEntity
	Name       string
	Label      string
	Type       domain.FieldType
	Category   string
	IsRequired bool
	SortOrder  int
	Options    []string
}

// NewFieldService constructs the service.
func NewFieldService(fields repository.FieldDefinitionRepository) *FieldService {
	return &FieldService{fields: fields}
}

// List returns the definitions of entity, optionally only the active ones.
func (s *FieldService) List(ctx context.Context, entity domain.FieldEntity, activeOnly bool) ([]domain.FieldDefinition, error) {
	return s.fields.List(ctx, repository.FieldFilter{Entity: entity, ActiveOnly: activeOnly})
}

// Create stores a new active definition. Names are unique per entity.
func (s *FieldService) Create(ctx context.Context, input FieldCreateInput) (*domain.FieldDefinition, error) {
	var problems []string
	key := domain.FieldKey(input.Name)
	if !domain.ValidFieldKey(key) {
		problems = append(problems, msgFieldKey)
	}
	if strings.TrimSpace(input.Label) == "" {
		problems = append(problems, "La etiqueta del campo es requerida")
	}
	if msg, ok := checkFieldType(input.Entity, input.Type); !ok {
		problems = append(problems, msg)
	}
	if len(problems) > 0 {
		return nil, validationError(problems...)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = domain.DefaultFieldCategory
	}
	field := &domain.FieldDefinition{
		Entity:     input.Entity,
		Name:       key,
		Label:      strings.TrimSpace(input.Label),
		Type:       input.Type,
		Category:   category,
		IsRequired: input.IsRequired,
		SortOrder:  input.SortOrder,
		Options:    input.Options,
		Active:     true,
	}
	if err := s.fields.Create(ctx, field); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.NewDuplicate(msgFieldDuplicate)
		}
		return nil, err
	}
	return field, nil
}

// Update applies a partial edit to a definition of entity.
func (s *FieldService) Update(ctx context.Context, entity domain.FieldEntity, id string, patch domain.FieldDefinitionPatch) (*domain.FieldDefinition, error) {
	if patch.Type != nil {
		if msg, ok := checkFieldType(entity, *patch.Type); !ok {
			return nil, validationError(msg)
		}
	}

	field, err := s.load(ctx, entity, id)
	if err != nil {
		return nil, err
	}

	assign(&field.Label, patch.Label)
	assign(&field.Type, patch.Type)
	assign(&field.Category, patch.Category)
	assign(&field.IsRequired, patch.IsRequired)
	assign(&field.SortOrder, patch.SortOrder)
	assign(&field.Active, patch.Active)
	if patch.OptionsSet {
		field.Options = patch.Options
	}

	if err := s.save(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

// Deactivate hides a definition from the active listing. Stored values are kept.
func (s *FieldService) Deactivate(ctx context.Context, entity domain.FieldEntity, id string) error {
	field, err := s.load(ctx, entity, id)
	if err != nil {
		return err
	}
	field.Active = false
	return s.save(ctx, field)
}

func (s *FieldService) load(ctx context.Context, entity domain.FieldEntity, id string) (*domain.FieldDefinition, error) {
	field, err := s.fields.GetByID(ctx, entity, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgFieldNotFound)
		}
		return nil, err
	}
	return field, nil
}

func (s *FieldService) save(ctx context.Context, field *domain.FieldDefinition) error {
	if err := s.fields.Update(ctx, field); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.NewNotFound(msgFieldNotFound)
		}
		return err
	}
	return nil
}

func checkFieldType(entity domain.FieldEntity, fieldType domain.FieldType) (string, bool) {
	rule, ok := fieldTypes[entity]
	if !ok {
		return "Entidad de campo desconocida", false
	}
	for _, allowed := range rule.allowed {
		if allowed == fieldType {
			return "", true
		}
	}
	return rule.message, false
}
