package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quantum-banking/webapp/internal/backend"
)

// RegisterHealthRoutes adds liveness/readiness style endpoints.
func RegisterHealthRoutes(app *fiber.App, d Deps, api *backend.Client) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		redisStatus := "ok"
		apiStatus := "ok"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.Cache != nil {
			if err := d.Cache.Ping(ctx).Err(); err != nil {
				redisStatus = err.Error()
			}
		}
		if api != nil {
			if err := api.Ping(ctx); err != nil {
				apiStatus = err.Error()
			}
		}
		status := http.StatusOK
		if redisStatus != "ok" || apiStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"redis": redisStatus, "banking_api": apiStatus},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
