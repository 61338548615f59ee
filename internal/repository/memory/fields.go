package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

type fieldRepository struct {
	store *Store
}

func (r *fieldRepository) Create(_ context.Context, field *domain.FieldDefinition) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.fields {
		if existing.Entity == field.Entity && existing.Name == field.Name {
			return repository.ErrDuplicate
		}
	}
	field.ID = s.newID()
	field.CreatedAt = s.now()
	s.fields[field.ID] = copyField(*field)
	return nil
}

func (r *fieldRepository) Update(_ context.Context, field *domain.FieldDefinition) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.fields[field.ID]
	if !ok || current.Entity != field.Entity {
		return repository.ErrNotFound
	}
	s.fields[field.ID] = copyField(*field)
	return nil
}

func (r *fieldRepository) GetByID(_ context.Context, entity domain.FieldEntity, id string) (*domain.FieldDefinition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	field, ok := r.store.fields[id]
	if !ok || field.Entity != entity {
		return nil, repository.ErrNotFound
	}
	found := copyField(field)
	return &found, nil
}

func (r *fieldRepository) List(_ context.Context, filter repository.FieldFilter) ([]domain.FieldDefinition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	fields := []domain.FieldDefinition{}
	for _, field := range r.store.fields {
		if field.Entity != filter.Entity {
			continue
		}
		if filter.ActiveOnly && !field.Active {
			continue
		}
		fields = append(fields, copyField(field))
	}
	sort.SliceStable(fields, func(i, j int) bool {
		a, b := fields[i], fields[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Label < b.Label
	})
	return fields, nil
}

func copyField(field domain.FieldDefinition) domain.FieldDefinition {
	field.Options = cloneStrings(field.Options)
	return field
}
