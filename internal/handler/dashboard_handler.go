package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"campus-booking/internal/middleware"
	"campus-booking/internal/service/dashboard"
)

type DashboardHandler struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) UserStats(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	if userID == uuid.Nil {
		return middleware.Unauthorized("User not found")
	}

	stats, err := h.dashboardService.UserStats(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *DashboardHandler) SystemStats(c *fiber.Ctx) error {
	stats, err := h.dashboardService.SystemStats(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
