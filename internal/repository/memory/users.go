package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUniqueUser(user); err != nil {
		return err
	}
	user.ID = s.newID()
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := s.checkUniqueUser(user); err != nil {
		return err
	}
	user.UpdatedAt = s.now()
	s.users[user.ID] = *user
	return nil
}

// checkUniqueUser mirrors the unique indexes on username and email.
func (s *Store) checkUniqueUser(user *domain.User) error {
	for id, existing := range s.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := []domain.User{}
	for _, user := range r.store.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && user.Active != *filter.Active {
			continue
		}
		users = append(users, user)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.users), nil
}
