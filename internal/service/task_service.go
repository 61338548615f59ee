package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/repository"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const (
	msgTaskNotFound    = "Tarea no encontrada"
	msgProjectNotFound = "Proyecto no encontrado"
	msgUnknownAssignee = "El usuario asignado no existe"

	maxTaskDescription = 1000
)

// TaskService owns the task status workflow. Reads and writes are not
// serialised: two concurrent changes to one task resolve as last write wins.
type TaskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	policies auth.PolicyTable
	events   publisher
	now      func() time.Time
}

// TaskDependencies bundles collaborators for the task service.
type TaskDependencies struct {
	TaskRepo    repository.TaskRepository
	ProjectRepo repository.ProjectRepository
	UserRepo    repository.UserRepository
	Policies    auth.PolicyTable
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// TaskCreateInput describes task creation payload. An empty Status means pendiente.
type TaskCreateInput struct {
	ProjectID   string
	Description string
	AssignedTo  string
	Status      domain.TaskStatus
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:    deps.TaskRepo,
		projects: deps.ProjectRepo,
		users:    deps.UserRepo,
		policies: deps.Policies,
		events:   publisher{dispatcher: deps.Dispatcher, logger: deps.Logger, now: time.Now},
		now:      time.Now,
	}
}

// CreateTask adds a task to a project. Any role may create tasks; creating a
// task directly in the approved status needs the approve capability.
func (s *TaskService) CreateTask(ctx context.Context, actor Actor, input TaskCreateInput) (*domain.Task, error) {
	var problems []string
	description := strings.TrimSpace(input.Description)
	if description == "" {
		problems = append(problems, "La descripción de la tarea es requerida")
	}
	assignedTo := strings.TrimSpace(input.AssignedTo)
	if assignedTo == "" {
		problems = append(problems, "Debe asignar la tarea a un usuario")
	}
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !status.Valid() {
		problems = append(problems, msgInvalidTaskStatus)
	}
	if len(problems) > 0 {
		return nil, validationError(problems...)
	}

	if status == domain.TaskStatusApproved && !s.policies.Can(actor.Role, auth.CapabilityApproveTask) {
		return nil, apperrors.NewForbidden(s.policies.Denial(auth.CapabilityApproveTask))
	}

	if _, err := s.projects.GetByID(ctx, input.ProjectID); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgProjectNotFound)
		}
		return nil, err
	}
	if err := s.checkAssignee(ctx, assignedTo); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ProjectID:   input.ProjectID,
		Description: description,
		Status:      status,
		AssignedTo:  &assignedTo,
		CreatedBy:   actor.ID,
	}
	if status == domain.TaskStatusApproved {
		stampApproval(task, actor.ID, s.now())
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, taskWriteError(err)
	}

	s.events.publish(ctx, events.Event{
		Type:      events.EventTaskCreated,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Actor:     actorOf(actor),
		Payload:   events.TaskCreatedPayload{Status: task.Status, AssignedTo: task.AssignedTo},
	})
	return task, nil
}

// SetStatus moves a task to status. Moving into aprobada needs the approve
// capability and stamps the approver; a denied call leaves the task untouched.
// Approval stamps are kept when the task later moves to another status.
func (s *TaskService) SetStatus(ctx context.Context, actor Actor, taskID string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, validationError(msgInvalidTaskStatus)
	}
	if status == domain.TaskStatusApproved && !s.policies.Can(actor.Role, auth.CapabilityApproveTask) {
		return nil, apperrors.NewForbidden(s.policies.Denial(auth.CapabilityApproveTask))
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	previous := task.Status
	now := s.now()
	task.Status = status
	task.UpdatedAt = now
	if status == domain.TaskStatusApproved {
		stampApproval(task, actor.ID, now)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, taskWriteError(err)
	}

	s.events.publish(ctx, events.Event{
		Type:      events.EventTaskStatusChanged,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Actor:     actorOf(actor),
		Payload:   events.TaskStatusChangedPayload{OldStatus: previous, NewStatus: status},
	})
	if status == domain.TaskStatusApproved {
		s.events.publish(ctx, events.Event{
			Type:      events.EventTaskApproved,
			TaskID:    task.ID,
			ProjectID: task.ProjectID,
			Actor:     actorOf(actor),
			Payload:   events.TaskApprovedPayload{ApprovedBy: actor.ID, ApprovedAt: now},
		})
	}
	return task, nil
}

// UpdateFields edits the description and/or assignee of a task. At least one
// of them must be present; an explicit null assignee clears the assignment.
func (s *TaskService) UpdateFields(ctx context.Context, actor Actor, taskID string, patch domain.TaskPatch) (*domain.TaskView, error) {
	if !s.policies.Can(actor.Role, auth.CapabilityEditTask) {
		return nil, apperrors.NewForbidden(s.policies.Denial(auth.CapabilityEditTask))
	}
	if patch.Empty() {
		return nil, validationError("Debe proporcionar al menos un campo para actualizar (description o assigned_to)")
	}
	if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > maxTaskDescription {
		return nil, validationError("La descripción no puede exceder 1000 caracteres")
	}

	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if patch.AssignedToSet && patch.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *patch.AssignedTo); err != nil {
			return nil, err
		}
	}

	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.AssignedToSet {
		task.AssignedTo = patch.AssignedTo
	}
	task.UpdatedAt = s.now()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, taskWriteError(err)
	}

	s.events.publish(ctx, events.Event{
		Type:      events.EventTaskUpdated,
		TaskID:    task.ID,
		ProjectID: task.ProjectID,
		Actor:     actorOf(actor),
		Payload: events.TaskUpdatedPayload{
			DescriptionChanged: patch.Description != nil,
			AssignmentChanged:  patch.AssignedToSet,
			AssignedTo:         task.AssignedTo,
		},
	})

	view, err := newUsernames(s.users).taskView(ctx, *task)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetTask returns a task with the usernames it references.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.TaskView, error) {
	task, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	view, err := newUsernames(s.users).taskView(ctx, *task)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *TaskService) loadTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgTaskNotFound)
		}
		return nil, err
	}
	return task, nil
}

// checkAssignee rejects an assignee id that names no identity.
func (s *TaskService) checkAssignee(ctx context.Context, userID string) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if repository.IsNotFound(err) {
			return validationError(msgUnknownAssignee)
		}
		return err
	}
	return nil
}

// taskWriteError translates repository failures of a task write.
func taskWriteError(err error) error {
	switch {
	case repository.IsNotFound(err):
		return apperrors.NewNotFound(msgTaskNotFound)
	case isInvalidReference(err):
		return validationError(msgUnknownAssignee)
	default:
		return err
	}
}

func stampApproval(task *domain.Task, approverID string, at time.Time) {
	approver := approverID
	approvedAt := at
	task.ApprovedBy = &approver
	task.ApprovedAt = &approvedAt
}
