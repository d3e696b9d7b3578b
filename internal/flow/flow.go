// Package flow is the top-level screen state machine: which of the four
// screens a browser session is on and the data threaded between them. Each
// transition method enforces legality so states like "dashboard without a
// session" are unrepresentable.
package flow

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quantum-banking/webapp/internal/otp"
)

// Screen identifies the active view.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenOTP
	ScreenDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenRegister:
		return "register"
	case ScreenOTP:
		return "otp"
	case ScreenDashboard:
		return "dashboard"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// ErrIllegalTransition is returned when a transition is requested from a
// screen that does not permit it.
var ErrIllegalTransition = errors.New("illegal screen transition")

// Machine tracks one session's screen and the payload each screen carries:
// the account number pre-filled on login after registration, and the pending
// OTP challenge. The challenge is transient state; it never leaves process
// memory.
type Machine struct {
	mu             sync.Mutex
	screen         Screen
	prefillAccount string
	challenge      *otp.Challenge
	input          *otp.Input
}

// New starts a machine on the login screen, or directly on the dashboard when
// the session store already reports an authenticated session.
func New(authenticated bool) *Machine {
	m := &Machine{input: otp.NewInput()}
	if authenticated {
		m.screen = ScreenDashboard
	}
	return m
}

// Screen returns the active screen.
func (m *Machine) Screen() Screen {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.screen
}

// PrefillAccount returns the account number carried to the login screen.
func (m *Machine) PrefillAccount() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefillAccount
}

// Challenge returns the pending OTP challenge, nil outside the OTP screen.
func (m *Machine) Challenge() *otp.Challenge {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.challenge
}

// Input returns the OTP entry model for the pending challenge.
func (m *Machine) Input() *otp.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.input
}

// GoLogin navigates to the login screen, discarding any in-flight challenge
// and prefill data.
func (m *Machine) GoLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screen = ScreenLogin
	m.prefillAccount = ""
	m.discardChallenge()
}

// GoRegister navigates to the registration screen, discarding any in-flight
// challenge and prefill data.
func (m *Machine) GoRegister() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screen = ScreenRegister
	m.prefillAccount = ""
	m.discardChallenge()
}

// OTPSent moves login -> otp after the API accepted the credentials and
// issued a passcode.
func (m *Machine) OTPSent(accountNumber string, challenge *otp.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.screen != ScreenLogin {
		return fmt.Errorf("%w: otp_sent from %s", ErrIllegalTransition, m.screen)
	}
	m.screen = ScreenOTP
	m.prefillAccount = accountNumber
	m.challenge = challenge
	m.input = otp.NewInput()
	return nil
}

// Registered moves register -> login carrying the newly assigned account
// number for display convenience.
func (m *Machine) Registered(accountNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.screen != ScreenRegister {
		return fmt.Errorf("%w: registered from %s", ErrIllegalTransition, m.screen)
	}
	m.screen = ScreenLogin
	m.prefillAccount = accountNumber
	m.discardChallenge()
	return nil
}

// Verified moves otp -> dashboard. The caller passes the session store's
// authenticated predicate; the dashboard is never exposed without it.
func (m *Machine) Verified(authenticated bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.screen != ScreenOTP {
		return fmt.Errorf("%w: verified from %s", ErrIllegalTransition, m.screen)
	}
	if !authenticated {
		return fmt.Errorf("%w: dashboard requires an authenticated session", ErrIllegalTransition)
	}
	m.screen = ScreenDashboard
	m.prefillAccount = ""
	m.discardChallenge()
	return nil
}

// CancelOTP moves otp -> login when the user abandons verification. The
// account number is kept as a login prefill; the challenge is discarded.
func (m *Machine) CancelOTP() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.screen != ScreenOTP {
		return fmt.Errorf("%w: cancel from %s", ErrIllegalTransition, m.screen)
	}
	m.screen = ScreenLogin
	m.discardChallenge()
	return nil
}

// ResendAccepted restarts the countdown and clears entered digits after the
// API confirmed a fresh passcode was sent.
func (m *Machine) ResendAccepted(now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.screen != ScreenOTP || m.challenge == nil {
		return fmt.Errorf("%w: resend from %s", ErrIllegalTransition, m.screen)
	}
	m.challenge.Restart(now)
	m.input.Clear()
	return nil
}

// VerifyRejected clears the entered digits after a failed attempt; focus
// returns to the first cell.
func (m *Machine) VerifyRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.input.Clear()
}

// LoggedOut resets the machine to the login screen after the session store
// was cleared.
func (m *Machine) LoggedOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.screen = ScreenLogin
	m.prefillAccount = ""
	m.discardChallenge()
}

func (m *Machine) discardChallenge() {
	m.challenge = nil
	m.input = otp.NewInput()
}
