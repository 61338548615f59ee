package auth

import (
	"net/http"
	"testing"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// A role must be admitted wherever any less privileged role is admitted.
func TestPoliciesAreRoleMonotonic(t *testing.T) {
	policies := DefaultPolicies()

	check := func(name string, req *Requirement) {
		for _, lower := range domain.Roles {
			if !req.Allows(lower) {
				continue
			}
			for _, higher := range domain.Roles {
				if higher.AtLeast(lower) && !req.Allows(higher) {
					t.Errorf("%s admits %s but not %s", name, lower, higher)
				}
			}
		}
	}

	for route, req := range policies.Routes {
		check(route.String(), req)
	}
	for capability, req := range policies.Capabilities {
		check(string(capability), req)
	}
}

func TestPoliciesCoreRoutes(t *testing.T) {
	policies := DefaultPolicies()

	cases := []struct {
		method  string
		path    string
		allowed []domain.Role
		denied  []domain.Role
	}{
		{http.MethodGet, "/api/users", []domain.Role{domain.RoleAdmin, domain.RoleManager}, []domain.Role{domain.RoleUser}},
		{http.MethodPatch, "/api/users/:id/status", []domain.Role{domain.RoleAdmin}, []domain.Role{domain.RoleManager, domain.RoleUser}},
		{http.MethodPost, "/api/projects/:id/tasks", domain.Roles, nil},
		{http.MethodPut, "/api/projects/tasks/:taskId/status", domain.Roles, nil},
		{http.MethodPut, "/api/projects/tasks/:taskId", []domain.Role{domain.RoleAdmin, domain.RoleManager}, []domain.Role{domain.RoleUser}},
		{http.MethodPost, "/api/projects", []domain.Role{domain.RoleAdmin, domain.RoleManager}, []domain.Role{domain.RoleUser}},
	}

	for _, tc := range cases {
		req, ok := policies.Lookup(tc.method, tc.path)
		if !ok {
			t.Fatalf("no policy for %s %s", tc.method, tc.path)
		}
		for _, role := range tc.allowed {
			if !req.Allows(role) {
				t.Errorf("%s %s should admit %s", tc.method, tc.path, role)
			}
		}
		for _, role := range tc.denied {
			if req.Allows(role) {
				t.Errorf("%s %s should deny %s", tc.method, tc.path, role)
			}
		}
	}

	if req, ok := policies.Lookup(http.MethodPost, "/api/auth/login"); !ok || req != nil {
		t.Fatalf("login must be public")
	}
}

func TestApproveCapability(t *testing.T) {
	policies := DefaultPolicies()
	if policies.Can(domain.RoleUser, CapabilityApproveTask) {
		t.Fatalf("user must not approve tasks")
	}
	if !policies.Can(domain.RoleManager, CapabilityApproveTask) || !policies.Can(domain.RoleAdmin, CapabilityApproveTask) {
		t.Fatalf("admin and manager must approve tasks")
	}
	if policies.Can(domain.RoleAdmin, Capability("unknown")) {
		t.Fatalf("unknown capabilities must be denied")
	}
}

func TestDenialMessagesNameRoles(t *testing.T) {
	policies := DefaultPolicies()
	req, _ := policies.Lookup(http.MethodGet, "/api/users")
	if req.Message != "Acceso denegado: Se requiere rol de Administrador o Manager" {
		t.Fatalf("unexpected message %q", req.Message)
	}
	req, _ = policies.Lookup(http.MethodPatch, "/api/users/:id/status")
	if req.Message != "Acceso denegado: Se requiere rol de Administrador" {
		t.Fatalf("unexpected message %q", req.Message)
	}
}
