package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const msgEndBeforeStart = "La fecha de fin debe ser posterior a la fecha de inicio"

// ProjectService manages projects and assembles their read views.
type ProjectService struct {
	projects repository.ProjectRepository
	clients  repository.ClientRepository
	tasks    repository.TaskRepository
	users    repository.UserRepository
}

// ProjectDependencies bundles repositories for the project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	ClientRepo  repository.ClientRepository
	TaskRepo    repository.TaskRepository
	UserRepo    repository.UserRepository
}

// ProjectCreateInput describes a new project. Zero values take the defaults
// prospectado, medium priority and 0% progress.
type ProjectCreateInput struct {
	ClientID           string
	Name               string
	Description        string
	Status             domain.ProjectStatus
	StartDate          *time.Time
	EndDate            *time.Time
	ResponsibleID      *string
	Budget             *float64
	Priority           domain.ProjectPriority
	ProgressPercentage int
	CustomData         map[string]any
}

// NewProjectService constructs the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	return &ProjectService{
		projects: deps.ProjectRepo,
		clients:  deps.ClientRepo,
		tasks:    deps.TaskRepo,
		users:    deps.UserRepo,
	}
}

// List returns every non-deleted project, newest first, with its tasks.
func (s *ProjectService) List(ctx context.Context) ([]domain.ProjectView, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	names := newUsernames(s.users)
	clientNames := make(map[string]*string)
	views := make([]domain.ProjectView, 0, len(projects))
	for _, project := range projects {
		view, err := s.view(ctx, project, names, clientNames)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Get returns one project with its tasks.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.ProjectView, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *project, newUsernames(s.users), make(map[string]*string))
}

// Create validates and stores a new project.
func (s *ProjectService) Create(ctx context.Context, input ProjectCreateInput) (*domain.Project, error) {
	project := &domain.Project{
		ClientID:           strings.TrimSpace(input.ClientID),
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		Status:             input.Status,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		ResponsibleID:      input.ResponsibleID,
		Budget:             input.Budget,
		Priority:           input.Priority,
		ProgressPercentage: input.ProgressPercentage,
		CustomData:         input.CustomData,
	}
	if project.Status == "" {
		project.Status = domain.ProjectStatusProspected
	}
	if project.Priority == "" {
		project.Priority = domain.ProjectPriorityMedium
	}
	if project.CustomData == nil {
		project.CustomData = map[string]any{}
	}

	if err := s.validate(ctx, project); err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, projectWriteError(err)
	}
	return project, nil
}

// Update applies a partial edit.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	project, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	assign(&project.ClientID, patch.ClientID)
	assign(&project.Name, patch.Name)
	assign(&project.Description, patch.Description)
	assign(&project.Status, patch.Status)
	assign(&project.Priority, patch.Priority)
	assign(&project.ProgressPercentage, patch.ProgressPercentage)
	if patch.StartDateSet {
		project.StartDate = patch.StartDate
	}
	if patch.EndDateSet {
		project.EndDate = patch.EndDate
	}
	if patch.ResponsibleIDSet {
		project.ResponsibleID = patch.ResponsibleID
	}
	if patch.BudgetSet {
		project.Budget = patch.Budget
	}
	if patch.CustomData != nil {
		project.CustomData = patch.CustomData
	}

	if err := s.validate(ctx, project); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgProjectNotFound)
		}
		return nil, projectWriteError(err)
	}
	return project, nil
}

func (s *ProjectService) validate(ctx context.Context, project *domain.Project) error {
	var problems []string
	if project.Name == "" {
		problems = append(problems, "El nombre del proyecto es requerido")
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		problems = append(problems, msgEndBeforeStart)
	}
	if project.ClientID == "" {
		problems = append(problems, "El ID del cliente es requerido")
	} else if _, err := s.clients.GetByID(ctx, project.ClientID); err != nil {
		if !repository.IsNotFound(err) {
			return err
		}
		problems = append(problems, "El cliente indicado no existe")
	}
	if project.ResponsibleID != nil {
		if _, err := s.users.GetByID(ctx, *project.ResponsibleID); err != nil {
			if !repository.IsNotFound(err) {
				return err
			}
			problems = append(problems, "El responsable indicado no existe")
		}
	}
	if len(problems) > 0 {
		return validationError(problems...)
	}
	return nil
}

func (s *ProjectService) load(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgProjectNotFound)
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) view(ctx context.Context, project domain.Project, names *usernames, clientNames map[string]*string) (*domain.ProjectView, error) {
	view := &domain.ProjectView{Project: project, Tasks: []domain.TaskView{}}

	clientName, ok := clientNames[project.ClientID]
	if !ok {
		client, err := s.clients.GetByID(ctx, project.ClientID)
		switch {
		case err == nil:
			clientName = &client.Name
		case !repository.IsNotFound(err):
			return nil, err
		}
		clientNames[project.ClientID] = clientName
	}
	view.ClientName = clientName

	var err error
	if view.ResponsibleName, err = names.lookup(ctx, project.ResponsibleID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	for _, task := range tasks {
		taskView, err := names.taskView(ctx, task)
		if err != nil {
			return nil, err
		}
		view.Tasks = append(view.Tasks, taskView)
	}
	return view, nil
}

func projectWriteError(err error) error {
	if isInvalidReference(err) {
		return validationError("El responsable o cliente indicado no existe")
	}
	return err
}
