package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/domain"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

func newGuardApp(t *testing.T) (*fiber.App, *TokenManager) {
	t.Helper()
	tokens := NewTokenManager("secret", time.Hour)
	guard := NewGuard(tokens, DefaultPolicies())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message": de.Message})
		},
	})
	handlers := append(guard.Protect(http.MethodGet, "/api/users"), func(c *fiber.Ctx) error {
		session, _ := SessionFromContext(c)
		return c.JSON(fiber.Map{"role": session.Role})
	})
	app.Get("/api/users", handlers...)
	return app, tokens
}

func doRequest(t *testing.T, app *fiber.App, header string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestGuardMissingToken(t *testing.T) {
	app, _ := newGuardApp(t)

	status, body := doRequest(t, app, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if body["message"] != "Token no proporcionado" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestGuardInvalidToken(t *testing.T) {
	app, _ := newGuardApp(t)

	status, body := doRequest(t, app, "Bearer garbage")
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if body["message"] != "Token inválido o expirado" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestGuardAuthorizationSchemes(t *testing.T) {
	app, _ := newGuardApp(t)

	cases := []struct {
		header string
		status int
	}{
		{"Bearer", http.StatusUnauthorized},
		{"Bearer   ", http.StatusUnauthorized},
		{"Token abc", http.StatusForbidden},
		{"Basic dXNlcjpwYXNz", http.StatusForbidden},
	}
	for _, tc := range cases {
		if status, _ := doRequest(t, app, tc.header); status != tc.status {
			t.Errorf("header %q: expected %d, got %d", tc.header, tc.status, status)
		}
	}
}

func TestGuardExpiredToken(t *testing.T) {
	app, tokens := newGuardApp(t)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := tokens.GenerateToken(domain.Identity{ID: "1", Username: "admin", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tokens.now = time.Now

	if status, _ := doRequest(t, app, "Bearer "+token); status != http.StatusForbidden {
		t.Fatalf("expected 403 for expired token, got %d", status)
	}
}

func TestGuardRoleCheck(t *testing.T) {
	app, tokens := newGuardApp(t)

	cases := []struct {
		role   domain.Role
		status int
	}{
		{domain.RoleAdmin, http.StatusOK},
		{domain.RoleManager, http.StatusOK},
		{domain.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		token, _, err := tokens.GenerateToken(domain.Identity{ID: "id-" + string(tc.role), Username: string(tc.role), Role: tc.role})
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		status, body := doRequest(t, app, "Bearer "+token)
		if status != tc.status {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.status, status)
		}
		if tc.status == http.StatusOK && body["role"] != string(tc.role) {
			t.Fatalf("role %s: session not attached, body %v", tc.role, body)
		}
	}
}

func TestProtectPanicsForUndeclaredRoute(t *testing.T) {
	guard := NewGuard(NewTokenManager("secret", time.Hour), DefaultPolicies())
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for undeclared route")
		}
	}()
	guard.Protect(http.MethodGet, "/api/unknown")
}
