package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

type projectRepository struct {
	store *Store
}

func (r *projectRepository) Create(_ context.Context, project *domain.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	project.ID = s.newID()
	project.CreatedAt = s.now()
	project.UpdatedAt = project.CreatedAt
	if project.CustomData == nil {
		project.CustomData = map[string]any{}
	}
	s.projects[project.ID] = copyProject(*project)
	return nil
}

func (r *projectRepository) Update(_ context.Context, project *domain.Project) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.projects[project.ID]
	if !ok || current.DeletedAt != nil {
		return repository.ErrNotFound
	}
	project.UpdatedAt = s.now()
	s.projects[project.ID] = copyProject(*project)
	return nil
}

func (r *projectRepository) GetByID(_ context.Context, id string) (*domain.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	project, ok := r.store.projects[id]
	if !ok || project.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	found := copyProject(project)
	return &found, nil
}

func (r *projectRepository) List(_ context.Context) ([]domain.Project, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	projects := []domain.Project{}
	for _, project := range r.store.projects {
		if project.DeletedAt != nil {
			continue
		}
		projects = append(projects, copyProject(project))
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func copyProject(project domain.Project) domain.Project {
	project.ResponsibleID = cloneString(project.ResponsibleID)
	project.StartDate = cloneTime(project.StartDate)
	project.EndDate = cloneTime(project.EndDate)
	project.DeletedAt = cloneTime(project.DeletedAt)
	if project.Budget != nil {
		budget := *project.Budget
		project.Budget = &budget
	}
	project.CustomData = cloneMap(project.CustomData)
	return project
}
