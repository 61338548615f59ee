package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/events"
)

func createTask(t *testing.T, env *testEnv, svc *TaskService) *domain.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), actorFor(env.member), TaskCreateInput{
		ProjectID:   env.project.ID,
		Description: "Preparar propuesta",
		AssignedTo:  env.member.ID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestCreateTaskDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()

	task := createTask(t, env, svc)
	if task.Status != domain.TaskStatusPending {
		t.Fatalf("expected pendiente, got %s", task.Status)
	}
	if task.CreatedBy != env.member.ID {
		t.Fatalf("expected creator %s, got %s", env.member.ID, task.CreatedBy)
	}
	if task.ApprovedBy != nil || task.ApprovedAt != nil {
		t.Fatalf("new task must not carry approval stamps")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, actorFor(env.member), TaskCreateInput{ProjectID: env.project.ID})
	de := requireStatus(t, err, http.StatusBadRequest)
	problems, _ := de.Details["errors"].([]string)
	if len(problems) != 2 {
		t.Fatalf("expected description and assignee problems, got %v", problems)
	}

	_, err = svc.CreateTask(ctx, actorFor(env.member), TaskCreateInput{ProjectID: "missing", Description: "x", AssignedTo: env.member.ID})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.CreateTask(ctx, actorFor(env.member), TaskCreateInput{
		ProjectID: env.project.ID, Description: "x", AssignedTo: env.member.ID, Status: domain.TaskStatusApproved,
	})
	requireStatus(t, err, http.StatusForbidden)
}

func TestSetStatusUserCannotApprove(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()
	task := createTask(t, env, svc)

	if _, err := svc.SetStatus(ctx, actorFor(env.member), task.ID, domain.TaskStatusCompleted); err != nil {
		t.Fatalf("user should move task to completada: %v", err)
	}

	_, err := svc.SetStatus(ctx, actorFor(env.member), task.ID, domain.TaskStatusApproved)
	de := requireStatus(t, err, http.StatusForbidden)
	if !strings.Contains(de.Message, "aprobar") {
		t.Fatalf("unexpected message %q", de.Message)
	}

	stored, err := env.repos.Tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if stored.Status != domain.TaskStatusCompleted {
		t.Fatalf("denied approval changed status to %s", stored.Status)
	}
	if stored.ApprovedBy != nil || stored.ApprovedAt != nil {
		t.Fatalf("denied approval stamped the task")
	}
}

func TestSetStatusApprovalStamps(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()
	task := createTask(t, env, svc)

	approvedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return approvedAt }

	for _, approver := range []domain.User{env.manager, env.admin} {
		updated, err := svc.SetStatus(ctx, actorFor(approver), task.ID, domain.TaskStatusApproved)
		if err != nil {
			t.Fatalf("%s approval: %v", approver.Role, err)
		}
		if updated.Status != domain.TaskStatusApproved {
			t.Fatalf("expected aprobada, got %s", updated.Status)
		}

		stored, err := env.repos.Tasks.GetByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("get task: %v", err)
		}
		if stored.ApprovedBy == nil || *stored.ApprovedBy != approver.ID {
			t.Fatalf("expected approved_by %s, got %v", approver.ID, stored.ApprovedBy)
		}
		if stored.ApprovedAt == nil || !stored.ApprovedAt.Equal(approvedAt) {
			t.Fatalf("expected approved_at %s, got %v", approvedAt, stored.ApprovedAt)
		}
		if !stored.UpdatedAt.Equal(approvedAt) {
			t.Fatalf("expected updated_at stamped")
		}
	}
}

// Moving an approved task back keeps who approved it and when.
func TestApprovalStampsKeptAfterLaterTransition(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()
	task := createTask(t, env, svc)

	if _, err := svc.SetStatus(ctx, actorFor(env.manager), task.ID, domain.TaskStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.SetStatus(ctx, actorFor(env.member), task.ID, domain.TaskStatusInProgress); err != nil {
		t.Fatalf("move back: %v", err)
	}

	stored, err := env.repos.Tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if stored.Status != domain.TaskStatusInProgress {
		t.Fatalf("expected en_progreso, got %s", stored.Status)
	}
	if stored.ApprovedBy == nil || *stored.ApprovedBy != env.manager.ID || stored.ApprovedAt == nil {
		t.Fatalf("approval stamps were cleared: %+v", stored)
	}
}

func TestSetStatusErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()
	task := createTask(t, env, svc)

	_, err := svc.SetStatus(ctx, actorFor(env.manager), "missing", domain.TaskStatusApproved)
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.SetStatus(ctx, actorFor(env.manager), task.ID, domain.TaskStatus("archivada"))
	requireStatus(t, err, http.StatusBadRequest)
}

func TestUpdateFields(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()
	task := createTask(t, env, svc)

	_, err := svc.UpdateFields(ctx, actorFor(env.admin), task.ID, domain.TaskPatch{})
	de := requireStatus(t, err, http.StatusBadRequest)
	if !strings.Contains(de.Message, "validación") {
		t.Fatalf("unexpected message %q", de.Message)
	}

	_, err = svc.UpdateFields(ctx, actorFor(env.member), task.ID, domain.TaskPatch{Description: strPtr("x")})
	requireStatus(t, err, http.StatusForbidden)

	_, err = svc.UpdateFields(ctx, actorFor(env.admin), "missing", domain.TaskPatch{Description: strPtr("x")})
	requireStatus(t, err, http.StatusNotFound)

	view, err := svc.UpdateFields(ctx, actorFor(env.manager), task.ID, domain.TaskPatch{
		AssignedTo:    strPtr(env.manager.ID),
		AssignedToSet: true,
	})
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if view.Description != "Preparar propuesta" {
		t.Fatalf("description must be untouched, got %q", view.Description)
	}
	if view.AssignedName == nil || *view.AssignedName != "manager" {
		t.Fatalf("expected assigned_name manager, got %v", view.AssignedName)
	}

	view, err = svc.UpdateFields(ctx, actorFor(env.manager), task.ID, domain.TaskPatch{AssignedToSet: true})
	if err != nil {
		t.Fatalf("clear assignee: %v", err)
	}
	if view.AssignedTo != nil || view.AssignedName != nil {
		t.Fatalf("expected cleared assignment, got %v / %v", view.AssignedTo, view.AssignedName)
	}

	_, err = svc.UpdateFields(ctx, actorFor(env.admin), task.ID, domain.TaskPatch{Description: strPtr(strings.Repeat("a", 1001))})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestTaskEventsPublished(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()

	seen := map[events.EventType]int{}
	for _, et := range []events.EventType{events.EventTaskCreated, events.EventTaskStatusChanged, events.EventTaskApproved, events.EventTaskUpdated} {
		et := et
		env.dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			if e.ID == "" || e.Timestamp.IsZero() {
				t.Errorf("event %s not stamped", e.Type)
			}
			seen[et]++
			return nil
		})
	}

	task := createTask(t, env, svc)
	if _, err := svc.SetStatus(ctx, actorFor(env.manager), task.ID, domain.TaskStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.SetStatus(ctx, actorFor(env.member), task.ID, domain.TaskStatusApproved); err == nil {
		t.Fatalf("expected denial")
	}
	if _, err := svc.UpdateFields(ctx, actorFor(env.admin), task.ID, domain.TaskPatch{Description: strPtr("y")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	want := map[events.EventType]int{
		events.EventTaskCreated:       1,
		events.EventTaskStatusChanged: 1,
		events.EventTaskApproved:      1,
		events.EventTaskUpdated:       1,
	}
	for et, n := range want {
		if seen[et] != n {
			t.Fatalf("expected %d %s events, got %d", n, et, seen[et])
		}
	}
}

func TestGetTaskResolvesNames(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()
	task := createTask(t, env, svc)
	if _, err := svc.SetStatus(ctx, actorFor(env.admin), task.ID, domain.TaskStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}

	view, err := svc.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.AssignedName == nil || *view.AssignedName != "user" {
		t.Fatalf("unexpected assigned_name %v", view.AssignedName)
	}
	if view.CreatedByName == nil || *view.CreatedByName != "user" {
		t.Fatalf("unexpected created_by_name %v", view.CreatedByName)
	}
	if view.ApprovedByName == nil || *view.ApprovedByName != "admin" {
		t.Fatalf("unexpected approved_by_name %v", view.ApprovedByName)
	}
}

func TestAssigneeMustExist(t *testing.T) {
	env := newTestEnv(t)
	svc := env.taskService()
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, actorFor(env.member), TaskCreateInput{
		ProjectID:   env.project.ID,
		Description: "Preparar propuesta",
		AssignedTo:  "no-such-user",
	})
	de := requireStatus(t, err, http.StatusBadRequest)
	problems, _ := de.Details["errors"].([]string)
	if len(problems) != 1 || problems[0] != msgUnknownAssignee {
		t.Fatalf("unexpected problems %v", de.Details)
	}
	tasks, err := env.repos.Tasks.ListByProject(ctx, env.project.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("rejected task must not be stored, got %d", len(tasks))
	}

	task := createTask(t, env, svc)
	_, err = svc.UpdateFields(ctx, actorFor(env.admin), task.ID, domain.TaskPatch{
		AssignedTo:    strPtr("no-such-user"),
		AssignedToSet: true,
	})
	requireStatus(t, err, http.StatusBadRequest)

	stored, err := env.repos.Tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if stored.AssignedTo == nil || *stored.AssignedTo != env.member.ID {
		t.Fatalf("assignment must be unchanged, got %v", stored.AssignedTo)
	}
}
