package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

type taskRepository struct {
	store *Store
}

func (r *taskRepository) Create(_ context.Context, task *domain.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	task.ID = s.newID()
	task.CreatedAt = s.now()
	task.UpdatedAt = task.CreatedAt
	s.tasks[task.ID] = copyTask(*task)
	return nil
}

func (r *taskRepository) Update(_ context.Context, task *domain.Task) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	s.tasks[task.ID] = copyTask(*task)
	return nil
}

func (r *taskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := copyTask(task)
	return &found, nil
}

func (r *taskRepository) ListByProject(_ context.Context, projectID string) ([]domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := []domain.Task{}
	for _, task := range r.store.tasks {
		if task.ProjectID == projectID {
			tasks = append(tasks, copyTask(task))
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (r *taskRepository) CountByStatus(_ context.Context) (map[domain.TaskStatus]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[domain.TaskStatus]int)
	for _, task := range r.store.tasks {
		counts[task.Status]++
	}
	return counts, nil
}

func copyTask(task domain.Task) domain.Task {
	task.AssignedTo = cloneString(task.AssignedTo)
	task.ApprovedBy = cloneString(task.ApprovedBy)
	task.ApprovedAt = cloneTime(task.ApprovedAt)
	return task
}
