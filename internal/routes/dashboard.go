package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quantum-banking/webapp/internal/dashboard"
	"github.com/quantum-banking/webapp/internal/middleware"
)

// RegisterDashboardRoutes wires the authenticated dashboard screen.
func RegisterDashboardRoutes(r fiber.Router, h *dashboard.Handler) {
	r.Get("/dashboard", middleware.RequireSession(), h.Show)
}
