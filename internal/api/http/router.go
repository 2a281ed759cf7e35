package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-passport/internal/api/http/handlers"
	"github.com/spec-kit/coffee-passport/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Messages       *handlers.MessagesHandler
	Customers      *handlers.CustomersHandler
	Staff          *handlers.StaffHandler
	Analytics      *handlers.AnalyticsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/auth/login", cfg.Auth.Login)

	// Inbound webhook stays open: the gateway has no admin token.
	api.Post("/whatsapp/message", cfg.Messages.HandleIncoming)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/whatsapp/send", cfg.Messages.Send)
	protected.Get("/whatsapp/qr", cfg.Messages.QR)
	protected.Get("/whatsapp/status", cfg.Messages.Status)

	protected.Get("/customers", cfg.Customers.List)
	protected.Get("/customers/:customer_id", cfg.Customers.Get)

	protected.Post("/staff", cfg.Staff.Create)
	protected.Get("/staff", cfg.Staff.List)
	protected.Delete("/staff/:phone_number", cfg.Staff.Remove)

	protected.Get("/analytics/stats", cfg.Analytics.Stats)
	protected.Get("/analytics/audit", cfg.Analytics.Audit)
}
