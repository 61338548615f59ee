package service

import (
	"context"
	"strings"

	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/repository"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const (
	msgUserNotFound  = "Usuario no encontrado"
	msgUserDuplicate = "El nombre de usuario o email ya existe"
)

// UserService administers identities.
type UserService struct {
	users      repository.UserRepository
	policies   auth.PolicyTable
	bcryptCost int
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo repository.UserRepository
	Policies auth.PolicyTable
}

// UserCreateInput describes a new identity.
type UserCreateInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// NewUserService constructs the service.
func NewUserService(cfg config.Config, deps UserDependencies) *UserService {
	return &UserService{users: deps.UserRepo, policies: deps.Policies, bcryptCost: cfg.Auth.BcryptCost}
}

// List returns identities newest first. Callers without the list-all
// capability only ever see accounts whose role is user.
func (s *UserService) List(ctx context.Context, actor Actor) ([]domain.User, error) {
	filter := repository.UserFilter{}
	if !s.policies.Can(actor.Role, auth.CapabilityListAllUsers) {
		role := domain.RoleUser
		filter.Role = &role
	}
	return s.users.List(ctx, filter)
}

// Create registers a new active identity.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, validationError("El rol debe ser admin, manager o user")
	}
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperrors.NewDuplicate(msgUserDuplicate)
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial edit. An empty password leaves the credential unchanged.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	if patch.Password != nil && *patch.Password == "" {
		patch.Password = nil
	}
	if patch.Empty() {
		return nil, apperrors.NewValidationError("No hay campos para actualizar", nil)
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, validationError("El rol debe ser admin, manager o user")
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		user.Username = strings.TrimSpace(*patch.Username)
	}
	if patch.Email != nil {
		user.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Password != nil {
		hash, err := auth.HashPassword(*patch.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.Active != nil {
		user.Active = *patch.Active
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive enables or disables an identity.
func (s *UserService) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Active = active
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) load(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound(msgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) save(ctx context.Context, user *domain.User) error {
	err := s.users.Update(ctx, user)
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return apperrors.NewNotFound(msgUserNotFound)
	case repository.IsDuplicate(err):
		return apperrors.NewDuplicate(msgUserDuplicate)
	default:
		return err
	}
}
