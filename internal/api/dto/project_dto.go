package dto

import (
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// CreateProjectRequest payload. Dates are ISO 8601 strings.
type CreateProjectRequest struct {
	ClientID           string                 `json:"client_id" validate:"required"`
	Name               string                 `json:"name" validate:"required,max=255"`
	Description        string                 `json:"description"`
	Status             domain.ProjectStatus   `json:"status" validate:"omitempty,oneof=prospectado cotizado en_progreso pausado finalizado"`
	StartDate          *string                `json:"start_date"`
	EndDate            *string                `json:"end_date"`
	ResponsibleID      *string                `json:"responsible_id"`
	Budget             *float64               `json:"budget" validate:"omitempty,gt=0"`
	Priority           domain.ProjectPriority `json:"priority" validate:"omitempty,oneof=high medium low"`
	ProgressPercentage int                    `json:"progress_percentage" validate:"min=0,max=100"`
	CustomData         map[string]any         `json:"custom_data"`
}

// Dates parses start_date and end_date.
func (r CreateProjectRequest) Dates() (start, end *time.Time, err error) {
	if r.StartDate != nil {
		if start, err = ParseDate("start_date", *r.StartDate); err != nil {
			return nil, nil, err
		}
	}
	if r.EndDate != nil {
		if end, err = ParseDate("end_date", *r.EndDate); err != nil {
			return nil, nil, err
		}
	}
	return start, end, nil
}

// UpdateProjectRequest is a partial project edit. Nullable fields use
// Optional so an explicit null clears them.
type UpdateProjectRequest struct {
	ClientID           *string                 `json:"client_id"`
	Name               *string                 `json:"name" validate:"omitempty,max=255"`
	Description        *string                 `json:"description"`
	Status             *domain.ProjectStatus   `json:"status" validate:"omitempty,oneof=prospectado cotizado en_progreso pausado finalizado"`
	StartDate          OptionalString          `json:"start_date"`
	EndDate            OptionalString          `json:"end_date"`
	ResponsibleID      OptionalString          `json:"responsible_id"`
	Budget             Optional[float64]       `json:"budget"`
	Priority           *domain.ProjectPriority `json:"priority" validate:"omitempty,oneof=high medium low"`
	ProgressPercentage *int                    `json:"progress_percentage" validate:"omitempty,min=0,max=100"`
	CustomData         map[string]any          `json:"custom_data"`
}

// ToPatch converts the request, parsing dates.
func (r UpdateProjectRequest) ToPatch() (domain.ProjectPatch, error) {
	patch := domain.ProjectPatch{
		ClientID:           r.ClientID,
		Name:               r.Name,
		Description:        r.Description,
		Status:             r.Status,
		StartDateSet:       r.StartDate.Set,
		EndDateSet:         r.EndDate.Set,
		ResponsibleID:      r.ResponsibleID.Value,
		ResponsibleIDSet:   r.ResponsibleID.Set,
		Budget:             r.Budget.Value,
		BudgetSet:          r.Budget.Set,
		Priority:           r.Priority,
		ProgressPercentage: r.ProgressPercentage,
		CustomData:         r.CustomData,
	}
	var err error
	if patch.StartDate, err = parseOptionalDate("start_date", r.StartDate); err != nil {
		return patch, err
	}
	if patch.EndDate, err = parseOptionalDate("end_date", r.EndDate); err != nil {
		return patch, err
	}
	return patch, nil
}

// ProjectResponse describes a project with its tasks.
type ProjectResponse struct {
	ID                 string                 `json:"id"`
	ClientID           string                 `json:"client_id"`
	ClientName         *string                `json:"client_name"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	Status             domain.ProjectStatus   `json:"status"`
	StartDate          *time.Time             `json:"start_date"`
	EndDate            *time.Time             `json:"end_date"`
	ResponsibleID      *string                `json:"responsible_id"`
	ResponsibleName    *string                `json:"responsible_name"`
	Budget             *float64               `json:"budget"`
	Priority           domain.ProjectPriority `json:"priority"`
	ProgressPercentage int                    `json:"progress_percentage"`
	CustomData         map[string]any         `json:"custom_data"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
	Tasks              []TaskResponse         `json:"tasks"`
}

// NewProjectResponse maps a project view.
func NewProjectResponse(p domain.ProjectView) ProjectResponse {
	custom := p.CustomData
	if custom == nil {
		custom = map[string]any{}
	}
	tasks := make([]TaskResponse, 0, len(p.Tasks))
	for _, task := range p.Tasks {
		tasks = append(tasks, NewTaskResponse(task))
	}
	return ProjectResponse{
		ID:                 p.ID,
		ClientID:           p.ClientID,
		ClientName:         p.ClientName,
		Name:               p.Name,
		Description:        p.Description,
		Status:             p.Status,
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
		ResponsibleID:      p.ResponsibleID,
		ResponsibleName:    p.ResponsibleName,
		Budget:             p.Budget,
		Priority:           p.Priority,
		ProgressPercentage: p.ProgressPercentage,
		CustomData:         custom,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		Tasks:              tasks,
	}
}
