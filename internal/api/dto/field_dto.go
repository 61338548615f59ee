package dto

import (
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// CreateFieldRequest defines a custom field. The allowed types depend on the
// entity and are checked by the field service.
type CreateFieldRequest struct {
	Name       string           `json:"name" validate:"required,max=100"`
	Label      string           `json:"label" validate:"required,max=255"`
	Type       domain.FieldType `json:"type" validate:"required"`
	Category   string           `json:"category" validate:"max=100"`
	IsRequired bool             `json:"is_required"`
	SortOrder  int              `json:"sort_order" validate:"min=0"`
	Options    []string         `json:"options"`
}

// UpdateFieldRequest is a partial field edit.
type UpdateFieldRequest struct {
	Label      *string            `json:"label" validate:"omitempty,max=255"`
	Type       *domain.FieldType  `json:"type"`
	Category   *string            `json:"category" validate:"omitempty,max=100"`
	IsRequired *bool              `json:"is_required"`
	SortOrder  *int               `json:"sort_order" validate:"omitempty,min=0"`
	Options    Optional[[]string] `json:"options"`
	Active     *bool              `json:"active"`
}

// ToPatch converts the request.
func (r UpdateFieldRequest) ToPatch() domain.FieldDefinitionPatch {
	patch := domain.FieldDefinitionPatch{
		Label:      r.Label,
		Type:       r.Type,
		Category:   r.Category,
		IsRequired: r.IsRequired,
		SortOrder:  r.SortOrder,
		OptionsSet: r.Options.Set,
		Active:     r.Active,
	}
	if r.Options.Value != nil {
		patch.Options = *r.Options.Value
	}
	return patch
}

// FieldResponse describes a field definition.
type FieldResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Label      string           `json:"label"`
	Type       domain.FieldType `json:"type"`
	Category   string           `json:"category"`
	IsRequired bool             `json:"is_required"`
	SortOrder  int              `json:"sort_order"`
	Options    []string         `json:"options"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NewFieldResponse maps a definition.
func NewFieldResponse(f domain.FieldDefinition) FieldResponse {
	return FieldResponse{
		ID:         f.ID,
		Name:       f.Name,
		Label:      f.Label,
		Type:       f.Type,
		Category:   f.Category,
		IsRequired: f.IsRequired,
		SortOrder:  f.SortOrder,
		Options:    f.Options,
		Active:     f.Active,
		CreatedAt:  f.CreatedAt,
	}
}
