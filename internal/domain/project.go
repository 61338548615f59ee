package domain

import "time"

// ProjectStatus tracks where a project sits in the sales/delivery pipeline.
type ProjectStatus string

const (
	ProjectStatusProspected ProjectStatus = "prospectado"
	ProjectStatusQuoted     ProjectStatus = "cotizado"
	ProjectStatusInProgress ProjectStatus = "en_progreso"
	ProjectStatusPaused     ProjectStatus = "pausado"
	ProjectStatusFinished   ProjectStatus = "finalizado"
)

// ProjectPriority ranks projects.
type ProjectPriority string

const (
	ProjectPriorityHigh   ProjectPriority = "high"
	ProjectPriorityMedium ProjectPriority = "medium"
	ProjectPriorityLow    ProjectPriority = "low"
)

// Project groups tasks delivered for a client.
type Project struct {
	ID                 string
	ClientID           string
	Name               string
	Description        string
	Status             ProjectStatus
	StartDate          *time.Time
	EndDate            *time.Time
	ResponsibleID      *string
	Budget             *float64
	Priority           ProjectPriority
	ProgressPercentage int
	CustomData         map[string]any
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// ProjectView is a project with resolved names and its tasks.
type ProjectView struct {
	Project
	ClientName      *string
	ResponsibleName *string
	Tasks           []TaskView
}

// ProjectPatch is a partial project edit.
type ProjectPatch struct {
	ClientID           *string
	Name               *string
	Description        *string
	Status             *ProjectStatus
	StartDate          *time.Time
	StartDateSet       bool
	EndDate            *time.Time
	EndDateSet         bool
	ResponsibleID      *string
	ResponsibleIDSet   bool
	Budget             *float64
	BudgetSet          bool
	Priority           *ProjectPriority
	ProgressPercentage *int
	CustomData         map[string]any
}
