package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/quantum-banking/webapp/internal/auth"
)

// RegisterAuthRoutes wires the login, registration and OTP screens.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	r.Get("/login", h.ShowLogin)
	if rateLimiter != nil {
		r.Post("/login", rateLimiter, h.SubmitLogin)
	} else {
		r.Post("/login", h.SubmitLogin)
	}

	r.Get("/register", h.ShowRegister)
	r.Post("/register", h.SubmitRegister)
	r.Post("/register/continue", h.ContinueToLogin)

	r.Get("/verify-otp", h.ShowVerify)
	r.Post("/verify-otp", h.SubmitVerify)
	r.Post("/verify-otp/resend", h.Resend)
	r.Post("/verify-otp/back", h.BackToLogin)

	r.Post("/logout", h.Logout)
}
