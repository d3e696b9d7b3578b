package auth

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/quantum-banking/webapp/internal/backend"
	"github.com/quantum-banking/webapp/internal/flow"
	"github.com/quantum-banking/webapp/internal/middleware"
	"github.com/quantum-banking/webapp/internal/otp"
	"github.com/quantum-banking/webapp/internal/session"
)

const resendReservationPrefix = "otp:resend:v1:"

// Handler serves the login, registration and OTP verification screens.
type Handler struct {
	api      *backend.Client
	sessions session.Store
	flows    *flow.Registry
	cache    *redis.Client
	logger   *slog.Logger
}

// NewHandler builds the auth screen handler. cache may be nil; the resend
// double-submit guard is then skipped.
func NewHandler(api *backend.Client, sessions session.Store, flows *flow.Registry, cache *redis.Client, logger *slog.Logger) *Handler {
	return &Handler{api: api, sessions: sessions, flows: flows, cache: cache, logger: logger}
}

func (h *Handler) machine(c *fiber.Ctx) *flow.Machine {
	return h.flows.Get(middleware.CurrentSessionID(c), middleware.CurrentSession(c).Authenticated())
}

// Home routes the bare path to whatever screen the session is on.
func (h *Handler) Home(c *fiber.Ctx) error {
	if middleware.CurrentSession(c).Authenticated() {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	switch h.machine(c).Screen() {
	case flow.ScreenDashboard:
		return c.Redirect("/dashboard", fiber.StatusFound)
	case flow.ScreenRegister:
		return c.Redirect("/register", fiber.StatusFound)
	case flow.ScreenOTP:
		return c.Redirect("/verify-otp", fiber.StatusFound)
	default:
		return c.Redirect("/login", fiber.StatusFound)
	}
}

// ShowLogin renders the login screen. Navigating here from the OTP screen
// discards the pending challenge; the account number is kept as a prefill.
func (h *Handler) ShowLogin(c *fiber.Ctx) error {
	m := h.machine(c)
	if middleware.CurrentSession(c).Authenticated() && m.Screen() == flow.ScreenDashboard {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	switch m.Screen() {
	case flow.ScreenOTP:
		if err := m.CancelOTP(); err != nil {
			m.GoLogin()
		}
	case flow.ScreenLogin:
	default:
		m.GoLogin()
	}
	return h.renderLogin(c, m.PrefillAccount(), "")
}

// SubmitLogin validates credentials locally, then asks the API to check them
// and issue a passcode.
func (h *Handler) SubmitLogin(c *fiber.Ctx) error {
	m := h.machine(c)
	if m.Screen() != flow.ScreenLogin {
		m.GoLogin()
	}

	form := LoginForm{
		AccountNumber: c.FormValue("account_number"),
		Password:      c.FormValue("password"),
	}
	if err := form.Validate(); err != nil {
		return h.renderLogin(c, form.AccountNumber, err.Error())
	}

	res, err := h.api.Login(c.UserContext(), backend.LoginInput{
		AccountNumber: form.AccountNumber,
		Password:      form.Password,
	})
	if err != nil {
		return h.renderLogin(c, form.AccountNumber, backend.Message(err))
	}
	if res.Status != "otp_sent" {
		return h.renderLogin(c, form.AccountNumber, "Unexpected response from the bank, please try again")
	}

	challenge := otp.NewChallenge(form.AccountNumber, time.Now())
	challenge.Message = res.Message
	challenge.DebugCode = res.DebugOTP
	if err := m.OTPSent(form.AccountNumber, challenge); err != nil {
		h.logger.Warn("login transition rejected", slog.Any("error", err))
		return h.renderLogin(c, form.AccountNumber, "Please try again")
	}
	return c.Redirect("/verify-otp", fiber.StatusSeeOther)
}

func (h *Handler) renderLogin(c *fiber.Ctx, accountNumber, errMsg string) error {
	return c.Render("login", fiber.Map{
		"Title":         "Sign In",
		"AccountNumber": accountNumber,
		"Error":         errMsg,
	})
}

// ShowRegister renders the registration screen.
func (h *Handler) ShowRegister(c *fiber.Ctx) error {
	m := h.machine(c)
	if m.Screen() != flow.ScreenRegister {
		m.GoRegister()
	}
	return c.Render("register", fiber.Map{"Title": "Create Account"})
}

// SubmitRegister validates the form locally and forwards it to the API. On
// success the entry form is suppressed and the server-assigned account number
// displayed.
func (h *Handler) SubmitRegister(c *fiber.Ctx) error {
	m := h.machine(c)
	if m.Screen() != flow.ScreenRegister {
		m.GoRegister()
	}

	form := RegisterForm{
		Name:            c.FormValue("name"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		ConfirmPassword: c.FormValue("confirm_password"),
	}
	renderError := func(msg string) error {
		return c.Render("register", fiber.Map{
			"Title":    "Create Account",
			"Error":    msg,
			"Name":     form.Name,
			"Email":    form.Email,
			"Strength": PasswordStrength(form.Password),
		})
	}

	if err := form.Validate(); err != nil {
		return renderError(err.Error())
	}

	name, email := form.Normalized()
	res, err := h.api.Register(c.UserContext(), backend.RegisterInput{
		Name:     name,
		Email:    email,
		Password: form.Password,
	})
	if err != nil {
		return renderError(backend.Message(err))
	}

	return c.Render("register", fiber.Map{
		"Title":         "Create Account",
		"Success":       true,
		"AccountNumber": res.AccountNumber,
	})
}

// ContinueToLogin moves register -> login with the new account number
// pre-filled.
func (h *Handler) ContinueToLogin(c *fiber.Ctx) error {
	m := h.machine(c)
	account := c.FormValue("account_number")
	if err := m.Registered(account); err != nil {
		m.GoLogin()
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// ShowVerify renders the OTP entry screen for the pending challenge.
func (h *Handler) ShowVerify(c *fiber.Ctx) error {
	m := h.machine(c)
	ch := m.Challenge()
	if m.Screen() != flow.ScreenOTP || ch == nil {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return h.renderVerify(c, m, "", "")
}

// SubmitVerify checks the entered code with the API and, on success, records
// the session bundle and moves to the dashboard after a short success screen.
func (h *Handler) SubmitVerify(c *fiber.Ctx) error {
	m := h.machine(c)
	ch := m.Challenge()
	if m.Screen() != flow.ScreenOTP || ch == nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	now := time.Now()
	if ch.Expired(now) {
		return h.renderVerify(c, m, "The code has expired. Please request a new one.", "")
	}

	input := m.Input()
	input.Clear()
	if pasted := c.FormValue("code"); pasted != "" {
		input.Paste(pasted)
	} else {
		for i := 0; i < otp.CodeLength; i++ {
			input.SetCell(i, c.FormValue("otp"+strconv.Itoa(i)))
		}
	}
	if !input.Complete() {
		return h.renderVerify(c, m, "Please enter the complete 6-digit OTP", "")
	}

	res, err := h.api.VerifyOTP(c.UserContext(), backend.VerifyInput{
		AccountNumber: ch.AccountNumber,
		OTP:           input.Code(),
	})
	if err != nil {
		m.VerifyRejected()
		return h.renderVerify(c, m, backend.Message(err), "")
	}

	sid := middleware.CurrentSessionID(c)
	if err := h.sessions.SetToken(c.UserContext(), sid, res.Token); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	if res.User != nil {
		if err := h.sessions.SetUser(c.UserContext(), sid, res.User); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	if err := m.Verified(true); err != nil {
		h.logger.Warn("verify transition rejected", slog.Any("error", err))
	}

	return c.Render("verify_otp", fiber.Map{
		"Title":   "Verify Your Identity",
		"Success": "Login successful! Redirecting to dashboard...",
	})
}

// Resend asks the API for a fresh passcode and restarts the countdown. A
// short-lived reservation in Redis guards against double submits.
func (h *Handler) Resend(c *fiber.Ctx) error {
	m := h.machine(c)
	ch := m.Challenge()
	if m.Screen() != flow.ScreenOTP || ch == nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	now := time.Now()
	if !ch.CanResend(now) {
		return h.renderVerify(c, m, "Please wait for the countdown to finish before resending.", "")
	}

	if h.cache != nil {
		key := resendReservationPrefix + middleware.CurrentSessionID(c)
		reserved, err := h.cache.SetNX(c.UserContext(), key, "1", otp.ChallengeTTL).Result()
		if err == nil && !reserved {
			return h.renderVerify(c, m, "A new code was already requested. Check your email.", "")
		}
	}

	res, err := h.api.ResendOTP(c.UserContext(), ch.AccountNumber)
	if err != nil {
		return h.renderVerify(c, m, backend.Message(err), "")
	}
	if res.Status != "otp_sent" {
		return h.renderVerify(c, m, "Could not resend the code, please try again.", "")
	}

	if err := m.ResendAccepted(now); err != nil {
		h.logger.Warn("resend transition rejected", slog.Any("error", err))
	}
	ch.Message = res.Message
	ch.DebugCode = res.DebugOTP
	return h.renderVerify(c, m, "", "New OTP sent to your email!")
}

// BackToLogin abandons the pending challenge.
func (h *Handler) BackToLogin(c *fiber.Ctx) error {
	m := h.machine(c)
	if err := m.CancelOTP(); err != nil {
		m.GoLogin()
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// Logout clears the session bundle and forces navigation back to the login
// entry point.
func (h *Handler) Logout(c *fiber.Ctx) error {
	sid := middleware.CurrentSessionID(c)
	if err := h.sessions.Clear(c.UserContext(), sid); err != nil {
		h.logger.Warn("session clear failed", slog.String("session_id", sid), slog.Any("error", err))
	}
	h.flows.Drop(sid)
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *Handler) renderVerify(c *fiber.Ctx, m *flow.Machine, errMsg, flash string) error {
	ch := m.Challenge()
	now := time.Now()
	input := m.Input()
	cells := input.Cells()
	return c.Render("verify_otp", fiber.Map{
		"Title":         "Verify Your Identity",
		"AccountNumber": ch.AccountNumber,
		"Cells":         cells[:],
		"Focus":         input.Focus(),
		"Remaining":     otp.FormatRemaining(ch.Remaining(now)),
		"Expired":       ch.Expired(now),
		"CanResend":     ch.CanResend(now),
		"DebugCode":     ch.DebugCode,
		"Error":         errMsg,
		"Flash":         flash,
	})
}
