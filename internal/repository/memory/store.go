// Package memory provides map-backed repositories used when no database is
// configured. Each call locks only for its own map access, so a service level
// read-modify-write is not atomic: concurrent updates of one record resolve
// as last write wins, the same as the Postgres implementation.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

// Store holds every collection of the in-memory backend.
type Store struct {
	mu       sync.RWMutex
	users    map[string]domain.User
	clients  map[string]domain.Client
	projects map[string]domain.Project
	tasks    map[string]domain.Task
	fields   map[string]domain.FieldDefinition

	now   func() time.Time
	newID func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		clients:  make(map[string]domain.Client),
		projects: make(map[string]domain.Project),
		tasks:    make(map[string]domain.Task),
		fields:   make(map[string]domain.FieldDefinition),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// NewRepositories returns repositories backed by a fresh store.
func NewRepositories() repository.Repositories {
	return NewStore().Repositories()
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:    &userRepository{store: s},
		Clients:  &clientRepository{store: s},
		Projects: &projectRepository{store: s},
		Tasks:    &taskRepository{store: s},
		Fields:   &fieldRepository{store: s},
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}

func cloneMap(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
