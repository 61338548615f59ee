package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/api/dto"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/service"
)

// ClientsHandler manages clients and their custom fields.
type ClientsHandler struct {
	clients *service.ClientService
	fields  *service.FieldService
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clients *service.ClientService, fields *service.FieldService) *ClientsHandler {
	return &ClientsHandler{clients: clients, fields: fields}
}

// List GET /api/clients.
func (h *ClientsHandler) List(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	clients, err := h.clients.List(c.UserContext(), caller)
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, dto.NewClientResponse(client))
	}
	return c.JSON(items)
}

// Create POST /api/clients.
func (h *ClientsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	client, err := h.clients.Create(c.UserContext(), service.ClientInput{
		Name:        req.Name,
		ContactName: req.ContactName,
		Industry:    req.Industry,
		Email:       req.Email,
		Phone:       req.Phone,
		Notes:       req.Notes,
		Projects:    req.Projects,
		CustomData:  req.CustomData,
	})
	if err != nil {
		return err
	}
	return created(c, client.ID, "Cliente creado exitosamente")
}

// Update PUT /api/clients/:id.
func (h *ClientsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateClientRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.clients.Update(c.UserContext(), c.Params("id"), req.ToPatch()); err != nil {
		return err
	}
	return message(c, "Cliente actualizado exitosamente")
}

// ListFields GET /api/clients/fields.
func (h *ClientsHandler) ListFields(c *fiber.Ctx) error {
	return listFields(c, h.fields, domain.FieldEntityClient, true)
}

// CreateField POST /api/clients/fields.
func (h *ClientsHandler) CreateField(c *fiber.Ctx) error {
	return createField(c, h.fields, domain.FieldEntityClient, "Campo agregado exitosamente")
}

// UpdateField PUT /api/clients/fields/:id.
func (h *ClientsHandler) UpdateField(c *fiber.Ctx) error {
	return updateField(c, h.fields, domain.FieldEntityClient, "Campo actualizado exitosamente")
}

func listFields(c *fiber.Ctx, fields *service.FieldService, entity domain.FieldEntity, activeOnly bool) error {
	defs, err := fields.List(c.UserContext(), entity, activeOnly)
	if err != nil {
		return err
	}
	items := make([]dto.FieldResponse, 0, len(defs))
	for _, def := range defs {
		items = append(items, dto.NewFieldResponse(def))
	}
	return c.JSON(items)
}

func createField(c *fiber.Ctx, fields *service.FieldService, entity domain.FieldEntity, msg string) error {
	var req dto.CreateFieldRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	def, err := fields.Create(c.UserContext(), service.FieldCreateInput{
		Entity:     entity,
		Name:       req.Name,
		Label:      req.Label,
		Type:       req.Type,
		Category:   req.Category,
		IsRequired: req.IsRequired,
		SortOrder:  req.SortOrder,
		Options:    req.Options,
	})
	if err != nil {
		return err
	}
	return created(c, def.ID, msg)
}

func updateField(c *fiber.Ctx, fields *service.FieldService, entity domain.FieldEntity, msg string) error {
	var req dto.UpdateFieldRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := fields.Update(c.UserContext(), entity, c.Params("id"), req.ToPatch()); err != nil {
		return err
	}
	return message(c, msg)
}
