package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/api/http/handlers"
	"github.com/spec-kit/nexa-sys/internal/auth"
	"github.com/spec-kit/nexa-sys/internal/observability"
	apperrors "github.com/spec-kit/nexa-sys/pkg/util"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Users        *handlers.UsersHandler
	Clients      *handlers.ClientsHandler
	Projects     *handlers.ProjectsHandler
	Dashboard    *handlers.DashboardHandler
	Guard        *auth.Guard
	LoginLimiter *LoginLimiter
	Metrics      *observability.Metrics
}

// guarded registers routes behind the access policy declared for them.
type guarded struct {
	app   *fiber.App
	guard *auth.Guard
}

func (g guarded) add(method, path string, handlers ...fiber.Handler) {
	chain := append(g.guard.Protect(method, path), handlers...)
	g.app.Add(method, path, chain...)
}

// RegisterRoutes wires HTTP routes. Every /api route must have an entry in
// the guard's policy table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("OK") })
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Handler())

	r := guarded{app: app, guard: cfg.Guard}

	r.add(fiber.MethodPost, "/api/auth/login", cfg.LoginLimiter.Handler(), cfg.Auth.Login)
	r.add(fiber.MethodGet, "/api/auth/me", cfg.Auth.Me)

	r.add(fiber.MethodGet, "/api/users", cfg.Users.List)
	r.add(fiber.MethodPost, "/api/users", cfg.Users.Create)
	r.add(fiber.MethodPut, "/api/users/:id", cfg.Users.Update)
	r.add(fiber.MethodPatch, "/api/users/:id/status", cfg.Users.SetStatus)

	r.add(fiber.MethodGet, "/api/clients/fields", cfg.Clients.ListFields)
	r.add(fiber.MethodPost, "/api/clients/fields", cfg.Clients.CreateField)
	r.add(fiber.MethodPut, "/api/clients/fields/:id", cfg.Clients.UpdateField)
	r.add(fiber.MethodGet, "/api/clients", cfg.Clients.List)
	r.add(fiber.MethodPost, "/api/clients", cfg.Clients.Create)
	r.add(fiber.MethodPut, "/api/clients/:id", cfg.Clients.Update)

	r.add(fiber.MethodGet, "/api/projects/meta/fields", cfg.Projects.ListFields)
	r.add(fiber.MethodGet, "/api/projects/meta/fields/all", cfg.Projects.ListAllFields)
	r.add(fiber.MethodPost, "/api/projects/meta/fields", cfg.Projects.CreateField)
	r.add(fiber.MethodPut, "/api/projects/meta/fields/:id", cfg.Projects.UpdateField)
	r.add(fiber.MethodDelete, "/api/projects/meta/fields/:id", cfg.Projects.DeactivateField)
	r.add(fiber.MethodGet, "/api/projects/tasks/:taskId", cfg.Projects.GetTask)
	r.add(fiber.MethodPut, "/api/projects/tasks/:taskId/status", cfg.Projects.SetTaskStatus)
	r.add(fiber.MethodPut, "/api/projects/tasks/:taskId", cfg.Projects.UpdateTask)
	r.add(fiber.MethodGet, "/api/projects", cfg.Projects.List)
	r.add(fiber.MethodPost, "/api/projects", cfg.Projects.Create)
	r.add(fiber.MethodGet, "/api/projects/:id", cfg.Projects.Get)
	r.add(fiber.MethodPut, "/api/projects/:id", cfg.Projects.Update)
	r.add(fiber.MethodPost, "/api/projects/:id/tasks", cfg.Projects.CreateTask)

	r.add(fiber.MethodGet, "/api/dashboard/stats", cfg.Dashboard.Stats)

	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("Ruta no encontrada")
	})
}
