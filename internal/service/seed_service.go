package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

// Seeder fills an empty store with the default accounts and demo records.
type Seeder struct {
	repos  repository.Repositories
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewSeeder constructs a seeder.
func NewSeeder(repos repository.Repositories, cfg config.AuthConfig, logger *zap.Logger) *Seeder {
	return &Seeder{repos: repos, cfg: cfg, logger: logger}
}

var defaultAccounts = []struct {
	username string
	email    string
	role     domain.Role
}{
	{"admin", "admin@nexa-sys.com", domain.RoleAdmin},
	{"manager", "manager@nexa-sys.com", domain.RoleManager},
	{"user", "user@nexa-sys.com", domain.RoleUser},
}

// SeedUsers creates one account per role when the user store is empty.
// It returns the accounts it created.
func (s *Seeder) SeedUsers(ctx context.Context) ([]domain.User, error) {
	count, err := s.repos.Users.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	hash, err := auth.HashPassword(s.cfg.DefaultPassword, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	created := make([]domain.User, 0, len(defaultAccounts))
	for _, account := range defaultAccounts {
		user := &domain.User{
			Username:     account.username,
			Email:        account.email,
			PasswordHash: hash,
			Role:         account.role,
			Active:       true,
		}
		if err := s.repos.Users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", account.username, err)
		}
		created = append(created, *user)
	}
	s.logger.Info("seeded default users", zap.Int("count", len(created)))
	return created, nil
}

// SeedSamples adds demo clients, a project with two tasks and custom field
// definitions when no client exists yet. It needs the default accounts.
func (s *Seeder) SeedSamples(ctx context.Context) error {
	clients, err := s.repos.Clients.Count(ctx, repository.ClientFilter{})
	if err != nil {
		return err
	}
	if clients > 0 {
		return nil
	}

	manager, err := s.repos.Users.GetByUsername(ctx, "manager")
	if err != nil {
		return fmt.Errorf("seed samples: %w", err)
	}
	member, err := s.repos.Users.GetByUsername(ctx, "user")
	if err != nil {
		return fmt.Errorf("seed samples: %w", err)
	}

	acme := &domain.Client{
		Name:        "Acme Corp",
		ContactName: "Juan Pérez",
		Industry:    "Tecnología",
		Email:       "contacto@acme.com",
		Phone:       "+56 2 2345 6789",
		Projects:    []string{"ERP"},
		Active:      true,
		CustomData:  map[string]any{},
	}
	globex := &domain.Client{
		Name:        "Globex",
		ContactName: "María González",
		Industry:    "Retail",
		Email:       "info@globex.com",
		Projects:    []string{},
		Active:      false,
		CustomData:  map[string]any{},
	}
	for _, client := range []*domain.Client{acme, globex} {
		if err := s.repos.Clients.Create(ctx, client); err != nil {
			return fmt.Errorf("seed client %s: %w", client.Name, err)
		}
	}

	responsible := manager.ID
	project := &domain.Project{
		ClientID:      acme.ID,
		Name:          "Implementación ERP",
		Description:   "Despliegue del ERP en las oficinas centrales",
		Status:        domain.ProjectStatusInProgress,
		ResponsibleID: &responsible,
		Priority:      domain.ProjectPriorityHigh,
		CustomData:    map[string]any{},
	}
	if err := s.repos.Projects.Create(ctx, project); err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	assignee := member.ID
	for _, task := range []*domain.Task{
		{ProjectID: project.ID, Description: "Levantamiento de requerimientos", Status: domain.TaskStatusCompleted, AssignedTo: &assignee, CreatedBy: manager.ID},
		{ProjectID: project.ID, Description: "Configuración inicial del sistema", Status: domain.TaskStatusPending, AssignedTo: &assignee, CreatedBy: manager.ID},
	} {
		if err := s.repos.Tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("seed task: %w", err)
		}
	}

	for _, field := range []*domain.FieldDefinition{
		{Entity: domain.FieldEntityClient, Name: domain.FieldKey("Fecha Aniversario"), Label: "Fecha Aniversario", Type: domain.FieldTypeDate, Category: domain.DefaultFieldCategory, Active: true},
		{Entity: domain.FieldEntityProject, Name: domain.FieldKey("Código Interno"), Label: "Código Interno", Type: domain.FieldTypeText, Category: domain.DefaultFieldCategory, Active: true},
		{Entity: domain.FieldEntityProject, Name: domain.FieldKey("Sitio Web"), Label: "Sitio Web", Type: domain.FieldTypeURL, Category: "Enlaces", SortOrder: 1, Active: true},
	} {
		if err := s.repos.Fields.Create(ctx, field); err != nil {
			return fmt.Errorf("seed field %s: %w", field.Name, err)
		}
	}

	s.logger.Info("seeded sample data")
	return nil
}
