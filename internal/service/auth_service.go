package service

import (
	"context"
	"time"

	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/config"
	"github.com/spec-kit/nexa-sys/internal/domain"
	"github.com/spec-kit/nexa-sys/internal/observability"
	"github.com/spec-kit/nexa-sys/internal/repository"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

// ErrInvalidCredentials is the single outward failure of Login. Unknown
// usernames, inactive accounts and wrong passwords are not told apart.
var ErrInvalidCredentials = apperrors.NewUnauthorized("Credenciales inválidas")

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	users     repository.UserRepository
	tokenMgr  *auth.TokenManager
	metrics   *observability.Metrics
	dummyHash string
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Metrics  *observability.Metrics
}

// LoginResult is a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.Identity
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	// compared against when the username is unknown so both paths pay for a hash
	dummy, _ := auth.HashPassword("nexa-sys-placeholder", cfg.Auth.BcryptCost)
	return &AuthService{
		users:     deps.UserRepo,
		tokenMgr:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		metrics:   deps.Metrics,
		dummyHash: dummy,
	}
}

// Login authenticates a username/password pair. The username must match as stored.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, err
		}
		_ = auth.ComparePassword(s.dummyHash, password)
		return nil, s.fail()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, s.fail()
	}
	if !user.Active {
		return nil, s.fail()
	}

	identity := user.Summary()
	token, expiresAt, err := s.tokenMgr.GenerateToken(identity)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLogin(observability.LoginSucceeded)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: identity}, nil
}

func (s *AuthService) fail() error {
	s.metrics.RecordLogin(observability.LoginFailed)
	return ErrInvalidCredentials
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
