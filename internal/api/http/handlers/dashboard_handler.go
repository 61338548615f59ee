package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nexa-sys/internal/service"
)

// DashboardHandler serves landing page stats.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
