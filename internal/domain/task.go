package domain

import "time"

// TaskStatus enumerates the Kanban columns a task moves through.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pendiente"
	TaskStatusInProgress TaskStatus = "en_progreso"
	TaskStatusCompleted  TaskStatus = "completada"
	TaskStatusApproved   TaskStatus = "aprobada"
)

// TaskStatuses lists the statuses in workflow order.
var TaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusApproved}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	for _, candidate := range TaskStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Task is a unit of work inside a project.
type Task struct {
	ID          string
	ProjectID   string
	Description string
	Status      TaskStatus
	AssignedTo  *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ApprovedBy  *string
	ApprovedAt  *time.Time
}

// TaskView is a task with the usernames of the identities it references.
type TaskView struct {
	Task
	AssignedName   *string
	CreatedByName  *string
	ApprovedByName *string
}

// TaskPatch is a partial task edit. AssignedToSet distinguishes an explicit
// null assignment from an absent field.
type TaskPatch struct {
	Description   *string
	AssignedTo    *string
	AssignedToSet bool
}

// Empty reports whether the patch names no field.
func (p TaskPatch) Empty() bool {
	return p.Description == nil && !p.AssignedToSet
}
