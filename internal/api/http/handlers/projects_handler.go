package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/api/dto"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/service"
)

// ProjectsHandler serves projects, their tasks and the project field catalogue.
type ProjectsHandler struct {
	projects *service.ProjectService
	tasks    *service.TaskService
	fields   *service.FieldService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService, tasks *service.TaskService, fields *service.FieldService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects, tasks: tasks, fields: fields}
}

// List GET /api/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	views, err := h.projects.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ProjectResponse, 0, len(views))
	for _, view := range views {
		items = append(items, dto.NewProjectResponse(view))
	}
	return c.JSON(items)
}

// Get GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	view, err := h.projects.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProjectResponse(*view))
}

// Create POST /api/projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	start, end, err := req.Dates()
	if err != nil {
		return err
	}
	project, err := h.projects.Create(c.UserContext(), service.ProjectCreateInput{
		ClientID:           req.ClientID,
		Name:               req.Name,
		Description:        req.Description,
		Status:             req.Status,
		StartDate:          start,
		EndDate:            end,
		ResponsibleID:      req.ResponsibleID,
		Budget:             req.Budget,
		Priority:           req.Priority,
		ProgressPercentage: req.ProgressPercentage,
		CustomData:         req.CustomData,
	})
	if err != nil {
		return err
	}
	return created(c, project.ID, "Proyecto creado exitosamente")
}

// Update PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	if _, err := h.projects.Update(c.UserContext(), c.Params("id"), patch); err != nil {
		return err
	}
	return message(c, "Proyecto actualizado exitosamente")
}

// CreateTask POST /api/projects/:id/tasks.
func (h *ProjectsHandler) CreateTask(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	task, err := h.tasks.CreateTask(c.UserContext(), caller, service.TaskCreateInput{
		ProjectID:   c.Params("id"),
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return created(c, task.ID, "Tarea creada exitosamente")
}

// GetTask GET /api/projects/tasks/:taskId.
func (h *ProjectsHandler) GetTask(c *fiber.Ctx) error {
	view, err := h.tasks.GetTask(c.UserContext(), c.Params("taskId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTaskResponse(*view))
}

// SetTaskStatus PUT /api/projects/tasks/:taskId/status.
func (h *ProjectsHandler) SetTaskStatus(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.TaskStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.tasks.SetStatus(c.UserContext(), caller, c.Params("taskId"), req.Status); err != nil {
		return err
	}
	return message(c, "Estado de tarea actualizado exitosamente")
}

// UpdateTask PUT /api/projects/tasks/:taskId.
func (h *ProjectsHandler) UpdateTask(c *fiber.Ctx) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	view, err := h.tasks.UpdateFields(c.UserContext(), caller, c.Params("taskId"), patch)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdateTaskResponse{Message: "Tarea actualizada exitosamente", Task: dto.NewTaskResponse(*view)})
}

// ListFields GET /api/projects/meta/fields.
func (h *ProjectsHandler) ListFields(c *fiber.Ctx) error {
	return listFields(c, h.fields, domain.FieldEntityProject, true)
}

// ListAllFields GET /api/projects/meta/fields/all.
func (h *ProjectsHandler) ListAllFields(c *fiber.Ctx) error {
	return listFields(c, h.fields, domain.FieldEntityProject, false)
}

// CreateField POST /api/projects/meta/fields.
func (h *ProjectsHandler) CreateField(c *fiber.Ctx) error {
	return createField(c, h.fields, domain.FieldEntityProject, "Campo de proyecto creado exitosamente")
}

// UpdateField PUT /api/projects/meta/fields/:id.
func (h *ProjectsHandler) UpdateField(c *fiber.Ctx) error {
	return updateField(c, h.fields, domain.FieldEntityProject, "Campo de proyecto actualizado exitosamente")
}

// DeactivateField DELETE /api/projects/meta/fields/:id.
func (h *ProjectsHandler) DeactivateField(c *fiber.Ctx) error {
	if err := h.fields.Deactivate(c.UserContext(), domain.FieldEntityProject, c.Params("id")); err != nil {
		return err
	}
	return message(c, "Campo de proyecto desactivado exitosamente")
}
