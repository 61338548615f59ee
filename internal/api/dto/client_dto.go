package dto

import (
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// CreateClientRequest payload.
type CreateClientRequest struct {
	Name        string         `json:"name" validate:"required,max=255"`
	ContactName string         `json:"contact_name" validate:"max=255"`
	Industry    string         `json:"industry" validate:"max=100"`
	Email       string         `json:"email" validate:"required,email"`
	Phone       string         `json:"phone" validate:"max=50"`
	Notes       string         `json:"notes"`
	Projects    []string       `json:"projects"`
	CustomData  map[string]any `json:"custom_data"`
}

// UpdateClientRequest is a partial client edit.
type UpdateClientRequest struct {
	Name        *string        `json:"name" validate:"omitempty,max=255"`
	ContactName *string        `json:"contact_name" validate:"omitempty,max=255"`
	Industry    *string        `json:"industry" validate:"omitempty,max=100"`
	Email       *string        `json:"email" validate:"omitempty,email"`
	Phone       *string        `json:"phone" validate:"omitempty,max=50"`
	Notes       *string        `json:"notes"`
	Projects    []string       `json:"projects"`
	CustomData  map[string]any `json:"custom_data"`
	Active      *bool          `json:"active"`
}

// ToPatch converts the request.
func (r UpdateClientRequest) ToPatch() domain.ClientPatch {
	return domain.ClientPatch{
		Name:        r.Name,
		ContactName: r.ContactName,
		Industry:    r.Industry,
		Email:       r.Email,
		Phone:       r.Phone,
		Notes:       r.Notes,
		Projects:    r.Projects,
		CustomData:  r.CustomData,
		Active:      r.Active,
	}
}

// ClientResponse describes a client.
type ClientResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ContactName string         `json:"contact_name"`
	Industry    string         `json:"industry"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	Notes       string         `json:"notes"`
	Projects    []string       `json:"projects"`
	Active      bool           `json:"active"`
	CustomData  map[string]any `json:"custom_data"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewClientResponse maps a client.
func NewClientResponse(c domain.Client) ClientResponse {
	projects := c.Projects
	if projects == nil {
		projects = []string{}
	}
	custom := c.CustomData
	if custom == nil {
		custom = map[string]any{}
	}
	return ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		ContactName: c.ContactName,
		Industry:    c.Industry,
		Email:       c.Email,
		Phone:       c.Phone,
		Notes:       c.Notes,
		Projects:    projects,
		Active:      c.Active,
		CustomData:  custom,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
