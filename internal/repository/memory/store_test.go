package memory

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

func newTestStore() *Store {
	s := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	s.newID = func() string { return "id-" + strconv.Itoa(calls) }
	return s
}

func TestUserUniqueness(t *testing.T) {
	repos := newTestStore().Repositories()
	ctx := context.Background()

	first := &domain.User{Username: "ana", Email: "ana@example.com", Role: domain.RoleUser, Active: true}
	if err := repos.Users.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	dupe := &domain.User{Username: "ana", Email: "other@example.com", Role: domain.RoleUser}
	if err := repos.Users.Create(ctx, dupe); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate username, got %v", err)
	}

	second := &domain.User{Username: "luis", Email: "luis@example.com", Role: domain.RoleManager}
	if err := repos.Users.Create(ctx, second); err != nil {
		t.Fatalf("create: %v", err)
	}
	second.Email = "ana@example.com"
	if err := repos.Users.Update(ctx, second); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate email on update, got %v", err)
	}
}

func TestUserListFiltersNewestFirst(t *testing.T) {
	repos := newTestStore().Repositories()
	ctx := context.Background()

	for _, u := range []domain.User{
		{Username: "u1", Email: "u1@x", Role: domain.RoleUser, Active: true},
		{Username: "m1", Email: "m1@x", Role: domain.RoleManager, Active: true},
		{Username: "u2", Email: "u2@x", Role: domain.RoleUser, Active: false},
	} {
		u := u
		if err := repos.Users.Create(ctx, &u); err != nil {
			t.Fatalf("create %s: %v", u.Username, err)
		}
	}

	role := domain.RoleUser
	users, err := repos.Users.List(ctx, repository.UserFilter{Role: &role})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 || users[0].Username != "u2" || users[1].Username != "u1" {
		t.Fatalf("unexpected users %+v", users)
	}

	active := true
	users, err = repos.Users.List(ctx, repository.UserFilter{Role: &role, Active: &active})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].Username != "u1" {
		t.Fatalf("unexpected active users %+v", users)
	}
}

func TestTaskCopiesAreIsolated(t *testing.T) {
	repos := newTestStore().Repositories()
	ctx := context.Background()

	assignee := "u1"
	task := &domain.Task{ProjectID: "p1", Description: "x", Status: domain.TaskStatusPending, AssignedTo: &assignee}
	if err := repos.Tasks.Create(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	assignee = "changed"

	got, err := repos.Tasks.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got.AssignedTo != "u1" {
		t.Fatalf("stored task shares memory with caller: %q", *got.AssignedTo)
	}

	*got.AssignedTo = "mutated"
	again, _ := repos.Tasks.GetByID(ctx, task.ID)
	if *again.AssignedTo != "u1" {
		t.Fatalf("returned task shares memory with store: %q", *again.AssignedTo)
	}
}

func TestTaskMissing(t *testing.T) {
	repos := newTestStore().Repositories()

	if _, err := repos.Tasks.GetByID(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repos.Tasks.Update(context.Background(), &domain.Task{ID: "nope"}); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
}

func TestTaskCountByStatus(t *testing.T) {
	repos := newTestStore().Repositories()
	ctx := context.Background()

	for _, status := range []domain.TaskStatus{domain.TaskStatusPending, domain.TaskStatusPending, domain.TaskStatusApproved} {
		if err := repos.Tasks.Create(ctx, &domain.Task{ProjectID: "p1", Description: "x", Status: status}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	counts, err := repos.Tasks.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[domain.TaskStatusPending] != 2 || counts[domain.TaskStatusApproved] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestFieldsScopedByEntityAndOrdered(t *testing.T) {
	repos := newTestStore().Repositories()
	ctx := context.Background()

	defs := []domain.FieldDefinition{
		{Entity: domain.FieldEntityProject, Name: "b", Label: "B", Category: "General", SortOrder: 2, Active: true},
		{Entity: domain.FieldEntityProject, Name: "a", Label: "A", Category: "General", SortOrder: 1, Active: true},
		{Entity: domain.FieldEntityProject, Name: "c", Label: "C", Category: "Contrato", SortOrder: 9, Active: false},
		{Entity: domain.FieldEntityClient, Name: "a", Label: "A", Category: "General", Active: true},
	}
	for i := range defs {
		if err := repos.Fields.Create(ctx, &defs[i]); err != nil {
			t.Fatalf("create %s: %v", defs[i].Name, err)
		}
	}
	dupe := domain.FieldDefinition{Entity: domain.FieldEntityProject, Name: "a", Label: "Again"}
	if err := repos.Fields.Create(ctx, &dupe); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	all, err := repos.Fields.List(ctx, repository.FieldFilter{Entity: domain.FieldEntityProject})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, f := range all {
		names = append(names, f.Name)
	}
	if len(names) != 3 || names[0] != "c" || names[1] != "a" || names[2] != "b" {
		t.Fatalf("unexpected order %v", names)
	}

	active, err := repos.Fields.List(ctx, repository.FieldFilter{Entity: domain.FieldEntityProject, ActiveOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active fields, got %d", len(active))
	}

	if _, err := repos.Fields.GetByID(ctx, domain.FieldEntityClient, defs[0].ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("project field must not resolve as client field, got %v", err)
	}
}
