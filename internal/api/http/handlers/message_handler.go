package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/dto"
	"github.com/spec-kit/coffee-passport/internal/gateway"
	"github.com/spec-kit/coffee-passport/internal/service"
	apperrors "github.com/spec-kit/coffee-passport/pkg/util/errorutil"
)

// MessagesHandler bridges the WhatsApp gateway to the command interpreter.
type MessagesHandler struct {
	passport *service.PassportService
	gateway  *gateway.Client
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(passport *service.PassportService, gatewayClient *gateway.Client) *MessagesHandler {
	return &MessagesHandler{passport: passport, gateway: gatewayClient}
}

// HandleIncoming POST /api/whatsapp/message.
func (h *MessagesHandler) HandleIncoming(c *fiber.Ctx) error {
	var req dto.IncomingMessage
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PhoneNumber == "" {
		return apperrors.NewValidationError("phone_number required", nil)
	}

	result := h.passport.ProcessMessage(c.UserContext(), req.PhoneNumber, req.Message)
	return c.JSON(dto.MessageResponse{Reply: result.Reply, Success: result.Success})
}

// Send POST /api/whatsapp/send proxies an outbound message to the gateway.
func (h *MessagesHandler) Send(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PhoneNumber == "" || req.Message == "" {
		return apperrors.NewValidationError("phone_number and message required", nil)
	}

	result, err := h.gateway.Send(c.UserContext(), req.PhoneNumber, req.Message)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(result)
}

// QR GET /api/whatsapp/qr returns the gateway pairing code.
func (h *MessagesHandler) QR(c *fiber.Ctx) error {
	result, err := h.gateway.QR(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(result)
}

// Status GET /api/whatsapp/status returns the gateway connection state.
func (h *MessagesHandler) Status(c *fiber.Ctx) error {
	result, err := h.gateway.Status(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(result)
}
