package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spec-kit/nexa-sys/internal/domain"
)

// Capability names a permission checked inside a handler or service rather
// than at route level.
type Capability string

const (
	// CapabilityApproveTask allows moving a task into the approved status.
	CapabilityApproveTask Capability = "task.approve"
	// CapabilityEditTask allows changing a task's description or assignee.
	CapabilityEditTask Capability = "task.edit"
	// CapabilityListAllUsers allows seeing admin and manager accounts in the user list.
	CapabilityListAllUsers Capability = "users.list_all"
	// CapabilityViewInactiveClients allows seeing deactivated clients.
	CapabilityViewInactiveClients Capability = "clients.view_inactive"
)

// Route identifies an endpoint by method and full path pattern.
type Route struct {
	Method string
	Path   string
}

func (r Route) String() string {
	return r.Method + " " + r.Path
}

// Requirement is the set of roles admitted by a route or capability. A nil
// requirement marks a public route.
type Requirement struct {
	Roles   []domain.Role
	Message string
}

// Allows reports whether role satisfies the requirement.
func (r *Requirement) Allows(role domain.Role) bool {
	if r == nil {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// PolicyTable maps every route and capability to its requirement.
type PolicyTable struct {
	Routes       map[Route]*Requirement
	Capabilities map[Capability]*Requirement
}

// Lookup returns the requirement of a route. ok is false for unknown routes.
func (t PolicyTable) Lookup(method, path string) (req *Requirement, ok bool) {
	req, ok = t.Routes[Route{Method: method, Path: path}]
	return req, ok
}

// Can reports whether role holds the capability. Unknown capabilities are denied.
func (t PolicyTable) Can(role domain.Role, capability Capability) bool {
	req, ok := t.Capabilities[capability]
	if !ok {
		return false
	}
	return req.Allows(role)
}

// Denial returns the message used when a capability check fails.
func (t PolicyTable) Denial(capability Capability) string {
	if req, ok := t.Capabilities[capability]; ok && req != nil {
		return req.Message
	}
	return "Acceso denegado"
}

var roleLabels = map[domain.Role]string{
	domain.RoleAdmin:   "Administrador",
	domain.RoleManager: "Manager",
	domain.RoleUser:    "Usuario",
}

// requireRoles builds a requirement whose denial message names the roles.
func requireRoles(roles ...domain.Role) *Requirement {
	labels := make([]string, 0, len(roles))
	for _, role := range roles {
		labels = append(labels, roleLabels[role])
	}
	return &Requirement{
		Roles:   roles,
		Message: fmt.Sprintf("Acceso denegado: Se requiere rol de %s", strings.Join(labels, " o ")),
	}
}

var (
	public         *Requirement
	anyRole        = &Requirement{Roles: domain.Roles, Message: "Acceso denegado"}
	adminOnly      = requireRoles(domain.RoleAdmin)
	adminOrManager = requireRoles(domain.RoleAdmin, domain.RoleManager)
)

// DefaultPolicies is the access policy of the HTTP API.
func DefaultPolicies() PolicyTable {
	return PolicyTable{
		Routes: map[Route]*Requirement{
			{http.MethodPost, "/api/auth/login"}: public,
			{http.MethodGet, "/api/auth/me"}:     anyRole,

			{http.MethodGet, "/api/users"}:              adminOrManager,
			{http.MethodPost, "/api/users"}:             adminOnly,
			{http.MethodPut, "/api/users/:id"}:          adminOnly,
			{http.MethodPatch, "/api/users/:id/status"}: adminOnly,

			{http.MethodGet, "/api/clients"}:            anyRole,
			{http.MethodPost, "/api/clients"}:           anyRole,
			{http.MethodPut, "/api/clients/:id"}:        adminOrManager,
			{http.MethodGet, "/api/clients/fields"}:     anyRole,
			{http.MethodPost, "/api/clients/fields"}:    adminOnly,
			{http.MethodPut, "/api/clients/fields/:id"}: adminOnly,

			{http.MethodGet, "/api/projects"}:                      anyRole,
			{http.MethodGet, "/api/projects/:id"}:                  anyRole,
			{http.MethodPost, "/api/projects"}:                     adminOrManager,
			{http.MethodPut, "/api/projects/:id"}:                  adminOrManager,
			{http.MethodPost, "/api/projects/:id/tasks"}:           anyRole,
			{http.MethodGet, "/api/projects/tasks/:taskId"}:        anyRole,
			{http.MethodPut, "/api/projects/tasks/:taskId/status"}: anyRole,
			{http.MethodPut, "/api/projects/tasks/:taskId"}:        adminOrManager,
			{http.MethodGet, "/api/projects/meta/fields"}:          anyRole,
			{http.MethodGet, "/api/projects/meta/fields/all"}:      adminOrManager,
			{http.MethodPost, "/api/projects/meta/fields"}:         adminOrManager,
			{http.MethodPut, "/api/projects/meta/fields/:id"}:      adminOrManager,
			{http.MethodDelete, "/api/projects/meta/fields/:id"}:   adminOrManager,

			{http.MethodGet, "/api/dashboard/stats"}: anyRole,
		},
		Capabilities: map[Capability]*Requirement{
			CapabilityApproveTask: {
				Roles:   []domain.Role{domain.RoleAdmin, domain.RoleManager},
				Message: "Solo Admin/Manager puede aprobar tareas",
			},
			CapabilityEditTask:            adminOrManager,
			CapabilityListAllUsers:        adminOnly,
			CapabilityViewInactiveClients: adminOrManager,
		},
	}
}
