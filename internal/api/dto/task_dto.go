package dto

import (
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// CreateTaskRequest payload. The status defaults to pendiente.
type CreateTaskRequest struct {
	Description string            `json:"description" validate:"required"`
	AssignedTo  string            `json:"assigned_to" validate:"required"`
	Status      domain.TaskStatus `json:"status" validate:"omitempty,oneof=pendiente en_progreso completada aprobada"`
}

// TaskStatusRequest moves a task to another column.
type TaskStatusRequest struct {
	Status domain.TaskStatus `json:"status" validate:"required,oneof=pendiente en_progreso completada aprobada"`
}

// UpdateTaskRequest edits the description and/or assignee. Absent fields are
// left untouched; "assigned_to": null clears the assignment.
type UpdateTaskRequest struct {
	Description OptionalString `json:"description"`
	AssignedTo  OptionalString `json:"assigned_to"`
}

// ToPatch converts the request. A null description is rejected.
func (r UpdateTaskRequest) ToPatch() (domain.TaskPatch, error) {
	if r.Description.Set && r.Description.Value == nil {
		return domain.TaskPatch{}, ValidationFailed("La descripción debe ser un texto")
	}
	return domain.TaskPatch{
		Description:   r.Description.Value,
		AssignedTo:    r.AssignedTo.Value,
		AssignedToSet: r.AssignedTo.Set,
	}, nil
}

// TaskResponse describes a task with resolved usernames.
type TaskResponse struct {
	ID             string            `json:"id"`
	ProjectID      string            `json:"project_id"`
	Description    string            `json:"description"`
	Status         domain.TaskStatus `json:"status"`
	AssignedTo     *string           `json:"assigned_to"`
	AssignedName   *string           `json:"assigned_name"`
	CreatedBy      string            `json:"created_by"`
	CreatedByName  *string           `json:"created_by_name"`
	ApprovedBy     *string           `json:"approved_by"`
	ApprovedByName *string           `json:"approved_by_name"`
	ApprovedAt     *time.Time        `json:"approved_at"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// UpdateTaskResponse is the body of a successful task edit.
type UpdateTaskResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}

// NewTaskResponse maps a task view.
func NewTaskResponse(t domain.TaskView) TaskResponse {
	return TaskResponse{
		ID:             t.ID,
		ProjectID:      t.ProjectID,
		Description:    t.Description,
		Status:         t.Status,
		AssignedTo:     t.AssignedTo,
		AssignedName:   t.AssignedName,
		CreatedBy:      t.CreatedBy,
		CreatedByName:  t.CreatedByName,
		ApprovedBy:     t.ApprovedBy,
		ApprovedByName: t.ApprovedByName,
		ApprovedAt:     t.ApprovedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
