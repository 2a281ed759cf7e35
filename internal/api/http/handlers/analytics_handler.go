package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/service"
)

// AnalyticsHandler serves aggregated program metrics and the audit trail.
type AnalyticsHandler struct {
	service *service.StatsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(statsService *service.StatsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: statsService}
}

// Stats GET /api/analytics/stats.
func (h *AnalyticsHandler) Stats(c *fiber.Ctx) error {
	overview, err := h.service.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// Audit GET /api/analytics/audit.
func (h *AnalyticsHandler) Audit(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	entries, err := h.service.AuditTrail(c.UserContext(), limit)
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewAuditLogResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
