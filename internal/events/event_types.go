package events

import (
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTaskCreated       EventType = "task_created"
	EventTaskStatusChanged EventType = "task_status_changed"
	EventTaskApproved      EventType = "task_approved"
	EventTaskUpdated       EventType = "task_updated"
)

// Actor identifies who caused an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TaskID    string    `json:"task_id"`
	ProjectID string    `json:"project_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	Status     domain.TaskStatus `json:"status"`
	AssignedTo *string           `json:"assigned_to,omitempty"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	OldStatus domain.TaskStatus `json:"old_status"`
	NewStatus domain.TaskStatus `json:"new_status"`
}

// TaskApprovedPayload payload.
type TaskApprovedPayload struct {
	ApprovedBy string    `json:"approved_by"`
	ApprovedAt time.Time `json:"approved_at"`
}

// TaskUpdatedPayload payload.
type TaskUpdatedPayload struct {
	DescriptionChanged bool    `json:"description_changed"`
	AssignmentChanged  bool    `json:"assignment_changed"`
	AssignedTo         *string `json:"assigned_to,omitempty"`
}
