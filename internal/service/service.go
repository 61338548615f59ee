package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/events"
	"github.com/spec-kit/nexa-sys/internal/repository"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID       string
	Username string
	Role     domain.Role
}

// publisher stamps and publishes events. Failures are logged, never returned:
// a notification problem must not fail the request that caused it.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func (p publisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func actorOf(a Actor) events.Actor {
	return events.Actor{UserID: a.ID, Role: a.Role}
}

// usernames resolves identity ids to usernames with one lookup per distinct id.
type usernames struct {
	users repository.UserRepository
	cache map[string]*string
}

func newUsernames(users repository.UserRepository) *usernames {
	return &usernames{users: users, cache: make(map[string]*string)}
}

// lookup returns nil when id is nil or names no identity.
func (u *usernames) lookup(ctx context.Context, id *string) (*string, error) {
	if id == nil || *id == "" {
		return nil, nil
	}
	if name, ok := u.cache[*id]; ok {
		return name, nil
	}
	user, err := u.users.GetByID(ctx, *id)
	if err != nil {
		if repository.IsNotFound(err) {
			u.cache[*id] = nil
			return nil, nil
		}
		return nil, err
	}
	name := user.Username
	u.cache[*id] = &name
	return &name, nil
}

func (u *usernames) taskView(ctx context.Context, task domain.Task) (domain.TaskView, error) {
	view := domain.TaskView{Task: task}
	var err error
	if view.AssignedName, err = u.lookup(ctx, task.AssignedTo); err != nil {
		return view, err
	}
	createdBy := task.CreatedBy
	if view.CreatedByName, err = u.lookup(ctx, &createdBy); err != nil {
		return view, err
	}
	if view.ApprovedByName, err = u.lookup(ctx, task.ApprovedBy); err != nil {
		return view, err
	}
	return view, nil
}
