package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/Livia-1212/user-management-final/internal/service"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetRetentionData returns every retention snapshot, most recent first
// GET /api/v1/analytics/retention
func (h *AnalyticsHandler) GetRetentionData(c *fiber.Ctx) error {
	snapshots, err := h.analyticsService.GetRetentionData(c.Context())
	if err != nil {
		log.Printf("[ANALYTICS_HANDLER] Failed to fetch retention data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": snapshots,
	})
}
