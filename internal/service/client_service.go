package service

import (
	"context"
	"strings"

	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const msgClientNotFound = "Cliente no encontrado"

// ClientService manages customer records.
type ClientService struct {
	clients  repository.ClientRepository
	policies auth.PolicyTable
}

// ClientInput describes a new client.
type ClientInput struct {
	Name        string
	ContactName string
	Industry    string
	Email       string
	Phone       string
	Notes       string
	Projects    []string
	CustomData  map[string]any
}

// NewClientService constructs the service.
func NewClientService(clients repository.ClientRepository, policies auth.PolicyTable) *ClientService {
	return &ClientService{clients: clients, policies: policies}
}

// List returns clients newest first; roles that cannot see inactive clients
// get active ones only.
func (s *ClientService) List(ctx context.Context, actor Actor) ([]domain.Client, error) {
	filter := repository.ClientFilter{}
	if !s.policies.Can(actor.Role, auth.CapabilityViewInactiveClients) {
		active := true
		filter.Active = &active
	}
	return s.clients.List(ctx, filter)
}

// Create stores a new active client.
func (s *ClientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	client := &domain.Client{
		Name:        strings.TrimSpace(input.Name),
		ContactName: input.ContactName,
		Industry:    input.Industry,
		Email:       strings.TrimSpace(input.Email),
		Phone:       input.Phone,
		Notes:       input.Notes,
		Projects:    input.Projects,
		Active:      true,
		CustomData:  input.CustomData,
	}
	if client.Projects == nil {
		client.Projects = []string{}
	}
	if client.CustomData == nil {
		client.CustomData = map[string]any{}
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Update applies a partial edit.
func (s *ClientService) Update(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgClientNotFound)
		}
		return nil, err
	}

	assign(&client.Name, patch.Name)
	assign(&client.ContactName, patch.ContactName)
	assign(&client.Industry, patch.Industry)
	assign(&client.Email, patch.Email)
	assign(&client.Phone, patch.Phone)
	assign(&client.Notes, patch.Notes)
	if patch.Projects != nil {
		client.Projects = patch.Projects
	}
	if patch.CustomData != nil {
		client.CustomData = patch.CustomData
	}
	if patch.Active != nil {
		client.Active = *patch.Active
	}

	if err := s.clients.Update(ctx, client); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgClientNotFound)
		}
		return nil, err
	}
	return client, nil
}

func assign[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}
