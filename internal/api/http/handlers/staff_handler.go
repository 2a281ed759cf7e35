package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/service"
	apperrors "github.com/spec-kit/coffee-passport/pkg/util/errorutil"
)

// StaffHandler serves staff administration endpoints.
type StaffHandler struct {
	service *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

// Create POST /api/staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, err := h.service.Create(c.UserContext(), req.PhoneNumber, req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewStaffResponse(staff)})
}

// List GET /api/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	members, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(members))
	for i := range members {
		items = append(items, dto.NewStaffResponse(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Remove DELETE /api/staff/:phone_number.
func (h *StaffHandler) Remove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.UserContext(), c.Params("phone_number")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Staff member removed successfully"})
}
