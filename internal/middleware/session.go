package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/quantum-banking/webapp/internal/session"
)

const (
	// SessionCookie names the browser cookie holding the session id.
	SessionCookie = "qb_session"
	// SessionIDKey and SessionKey are the locals under which the resolved
	// session id and bundle are stored for downstream handlers.
	SessionIDKey = "session_id"
	SessionKey   = "session"
)

// LoadSession resolves the browser's session cookie, minting one on first
// contact, and loads the session bundle into request locals. Store failures
// degrade to an unauthenticated session rather than blocking the page.
func LoadSession(store session.Store, ttl time.Duration, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(SessionCookie)
		if id == "" {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		sess, err := session.Load(c.UserContext(), store, id)
		if err != nil {
			if logger != nil {
				logger.Warn("session load failed", slog.String("session_id", id), slog.Any("error", err))
			}
			sess = session.Session{}
		}

		c.Locals(SessionIDKey, id)
		c.Locals(SessionKey, sess)
		return c.Next()
	}
}

// RequireSession guards authenticated screens: unauthenticated requests are
// redirected to the login entry point.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := c.Locals(SessionKey).(session.Session)
		if !sess.Authenticated() {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// CurrentSession returns the session bundle resolved by LoadSession.
func CurrentSession(c *fiber.Ctx) session.Session {
	sess, _ := c.Locals(SessionKey).(session.Session)
	return sess
}

// CurrentSessionID returns the session id resolved by LoadSession.
func CurrentSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(SessionIDKey).(string)
	return id
}
