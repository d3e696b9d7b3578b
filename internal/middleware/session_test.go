package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/quantum-banking/webapp/internal/backend"
	"github.com/quantum-banking/webapp/internal/logging"
	"github.com/quantum-banking/webapp/internal/session"
)

func TestLoadSessionMintsCookieOnFirstContact(t *testing.T) {
	store := session.NewMemoryStore()
	app := fiber.New()
	app.Use(LoadSession(store, time.Hour, logging.Discard()))
	app.Get("/", func(c *fiber.Ctx) error {
		if CurrentSessionID(c) == "" {
			t.Fatal("expected a session id in locals")
		}
		if CurrentSession(c).Authenticated() {
			t.Fatal("fresh session must be unauthenticated")
		}
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	set := resp.Header.Get("Set-Cookie")
	if !strings.HasPrefix(set, SessionCookie+"=") {
		t.Fatalf("expected %s cookie, got %q", SessionCookie, set)
	}
}

func TestLoadSessionRestoresBundle(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	if err := store.SetToken(ctx, "sid-1", "tok-1"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	if err := store.SetUser(ctx, "sid-1", &backend.UserProfile{Name: "Ada"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	app := fiber.New()
	app.Use(LoadSession(store, time.Hour, logging.Discard()))
	app.Get("/", func(c *fiber.Ctx) error {
		sess := CurrentSession(c)
		if !sess.Authenticated() {
			t.Fatal("expected authenticated session")
		}
		if sess.User == nil || sess.User.Name != "Ada" {
			t.Fatalf("expected restored profile, got %+v", sess.User)
		}
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", SessionCookie+"=sid-1")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("request: %v", err)
	}
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	store := session.NewMemoryStore()
	app := fiber.New()
	app.Use(LoadSession(store, time.Hour, logging.Discard()))
	app.Get("/private", RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString("secret")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireSessionPassesAuthenticated(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()
	store.SetToken(ctx, "sid-2", "tok-2")

	app := fiber.New()
	app.Use(LoadSession(store, time.Hour, logging.Discard()))
	app.Get("/private", RequireSession(), func(c *fiber.Ctx) error {
		return c.SendString("secret")
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Cookie", SessionCookie+"=sid-2")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "secret" {
		t.Fatalf("unexpected body %q", body)
	}
}
