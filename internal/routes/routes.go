package routes

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/quantum-banking/webapp/internal/auth"
	"github.com/quantum-banking/webapp/internal/backend"
	"github.com/quantum-banking/webapp/internal/config"
	"github.com/quantum-banking/webapp/internal/dashboard"
	"github.com/quantum-banking/webapp/internal/flow"
	"github.com/quantum-banking/webapp/internal/middleware"
	"github.com/quantum-banking/webapp/internal/session"
	"github.com/quantum-banking/webapp/web"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without Redis the
// session store falls back to process memory, which is fine for development.
func Setup(app *fiber.App, d Deps) error {
	var sessions session.Store
	if d.Cache != nil {
		sessions = session.NewRedisStore(d.Cache, d.Cfg.SessionSecret, d.Cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore()
	}

	api := backend.New(d.Cfg.APIBaseURL, d.Logger)
	flows := flow.NewRegistry()

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.LoadSession(sessions, d.Cfg.SessionTTL, d.Logger))

	// Health
	RegisterHealthRoutes(app, d, api)

	// Static assets
	static, err := fs.Sub(web.Files, "static")
	if err != nil {
		return err
	}
	app.Use("/static", filesystem.New(filesystem.Config{Root: http.FS(static)}))

	// Handlers
	authHandler := auth.NewHandler(api, sessions, flows, d.Cache, d.Logger)
	dashHandler := dashboard.NewHandler(api, sessions, flows, d.Logger)

	app.Get("/", authHandler.Home)

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(app, authHandler, rateLimiter)
	RegisterDashboardRoutes(app, dashHandler)

	return nil
}
