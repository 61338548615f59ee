package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/repository"
	"github.com/spec-kit/nexa-sys/internal/repository/memory"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

type testEnv struct {
	cfg        config.Config
	repos      repository.Repositories
	dispatcher events.Dispatcher
	admin      domain.User
	manager    domain.User
	member     domain.User
	project    domain.Project
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		cfg: config.Config{Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenTTLMinutes: 60,
			BcryptCost:      4,
			DefaultPassword: "admin123",
		}},
		repos:      memory.NewRepositories(),
		dispatcher: events.NewInMemoryDispatcher(),
	}

	seeder := NewSeeder(env.repos, env.cfg.Auth, zap.NewNop())
	users, err := seeder.SeedUsers(ctx)
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}
	for _, u := range users {
		switch u.Role {
		case domain.RoleAdmin:
			env.admin = u
		case domain.RoleManager:
			env.manager = u
		case domain.RoleUser:
			env.member = u
		}
	}

	client := &domain.Client{Name: "Acme", Email: "acme@example.com", Active: true}
	if err := env.repos.Clients.Create(ctx, client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	project := &domain.Project{ClientID: client.ID, Name: "ERP", Status: domain.ProjectStatusInProgress, Priority: domain.ProjectPriorityMedium}
	if err := env.repos.Projects.Create(ctx, project); err != nil {
		t.Fatalf("create project: %v", err)
	}
	env.project = *project
	return env
}

func (e *testEnv) taskService() *TaskService {
	return NewTaskService(TaskDependencies{
		TaskRepo:    e.repos.Tasks,
		ProjectRepo: e.repos.Projects,
		UserRepo:    e.repos.Users,
		Policies:    auth.DefaultPolicies(),
		Dispatcher:  e.dispatcher,
		Logger:      zap.NewNop(),
	})
}

func actorFor(u domain.User) Actor {
	return Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func requireStatus(t *testing.T, err error, status int) *apperrors.DomainError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus != status {
		t.Fatalf("expected status %d, got %d (%s)", status, de.HTTPStatus, de.Message)
	}
	return de
}

func strPtr(s string) *string { return &s }
