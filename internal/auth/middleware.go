package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

const sessionKey = "auth_session"

const (
	msgMissingToken = "Token no proporcionado"
	msgInvalidToken = "Token inválido o expirado"
)

// Guard authenticates bearer tokens and enforces the policy table.
type Guard struct {
	tokens   *TokenManager
	policies PolicyTable
}

// NewGuard constructs the guard.
func NewGuard(tokens *TokenManager, policies PolicyTable) *Guard {
	return &Guard{tokens: tokens, policies: policies}
}

// Policies exposes the table the guard enforces.
func (g *Guard) Policies() PolicyTable {
	return g.policies
}

// Authenticate verifies the bearer token and stores the session in the context.
// An absent token is a 401; a token that fails verification is a 403.
func (g *Guard) Authenticate(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return apperrors.NewUnauthorized(msgMissingToken)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized(msgMissingToken)
	}
	// A credential under another scheme is a presented token that cannot verify.
	if !strings.EqualFold(parts[0], "Bearer") {
		return &apperrors.DomainError{Code: "TOKEN_INVALID", Message: msgInvalidToken, HTTPStatus: fiber.StatusForbidden}
	}

	session, err := g.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		code := "TOKEN_INVALID"
		if errors.Is(err, ErrTokenExpired) {
			code = "TOKEN_EXPIRED"
		}
		return &apperrors.DomainError{Code: code, Message: msgInvalidToken, HTTPStatus: fiber.StatusForbidden}
	}

	c.Locals(sessionKey, session)
	return c.Next()
}

// RequireRoles admits only sessions whose role satisfies req.
func RequireRoles(req *Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized(msgMissingToken)
		}
		if !req.Allows(session.Role) {
			return apperrors.NewForbidden(req.Message)
		}
		return c.Next()
	}
}

// Protect returns the middleware chain for a route declared in the policy
// table. It panics for undeclared routes so a missing policy fails at startup.
func (g *Guard) Protect(method, path string) []fiber.Handler {
	req, ok := g.policies.Lookup(method, path)
	if !ok {
		panic("auth: no access policy for " + Route{Method: method, Path: path}.String())
	}
	if req == nil {
		return nil
	}
	return []fiber.Handler{g.Authenticate, RequireRoles(req)}
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}
