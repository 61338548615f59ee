package memory

import (
	"context"
	"sort"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

type clientRepository struct {
	store *Store
}

func (r *clientRepository) Create(_ context.Context, client *domain.Client) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	client.ID = s.newID()
	client.CreatedAt = s.now()
	client.UpdatedAt = client.CreatedAt
	s.clients[client.ID] = copyClient(*client)
	return nil
}

func (r *clientRepository) Update(_ context.Context, client *domain.Client) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[client.ID]; !ok {
		return repository.ErrNotFound
	}
	client.UpdatedAt = s.now()
	s.clients[client.ID] = copyClient(*client)
	return nil
}

func (r *clientRepository) GetByID(_ context.Context, id string) (*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	client, ok := r.store.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := copyClient(client)
	return &found, nil
}

func (r *clientRepository) List(_ context.Context, filter repository.ClientFilter) ([]domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	clients := []domain.Client{}
	for _, client := range r.store.clients {
		if filter.Active != nil && client.Active != *filter.Active {
			continue
		}
		clients = append(clients, copyClient(client))
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, filter repository.ClientFilter) (int, error) {
	clients, err := r.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(clients), nil
}

func copyClient(client domain.Client) domain.Client {
	client.Projects = cloneStrings(client.Projects)
	client.CustomData = cloneMap(client.CustomData)
	return client
}
