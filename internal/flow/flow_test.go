package flow

import (
	"errors"
	"testing"
	"time"

	"github.com/quantum-banking/webapp/internal/otp"
)

func TestInitialScreen(t *testing.T) {
	if got := New(false).Screen(); got != ScreenLogin {
		t.Fatalf("expected login start, got %s", got)
	}
	if got := New(true).Screen(); got != ScreenDashboard {
		t.Fatalf("expected dashboard start for authenticated session, got %s", got)
	}
}

func TestLoginToOTPCarriesAccount(t *testing.T) {
	m := New(false)
	ch := otp.NewChallenge("1234567890", time.Now())
	if err := m.OTPSent("1234567890", ch); err != nil {
		t.Fatalf("otp sent: %v", err)
	}
	if m.Screen() != ScreenOTP {
		t.Fatalf("expected otp screen, got %s", m.Screen())
	}
	if m.Challenge() == nil || m.Challenge().AccountNumber != "1234567890" {
		t.Fatalf("expected challenge carrying the account number")
	}
}

func TestOTPSentOnlyFromLogin(t *testing.T) {
	m := New(false)
	m.GoRegister()
	err := m.OTPSent("1234567890", otp.NewChallenge("1234567890", time.Now()))
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected illegal transition, got %v", err)
	}
}

func TestRegisteredPrefillsLogin(t *testing.T) {
	m := New(false)
	m.GoRegister()
	if err := m.Registered("9876543210"); err != nil {
		t.Fatalf("registered: %v", err)
	}
	if m.Screen() != ScreenLogin {
		t.Fatalf("expected login screen, got %s", m.Screen())
	}
	if m.PrefillAccount() != "9876543210" {
		t.Fatalf("expected prefilled account, got %q", m.PrefillAccount())
	}
}

func TestVerifiedRequiresAuthenticatedSession(t *testing.T) {
	m := New(false)
	if err := m.OTPSent("1234567890", otp.NewChallenge("1234567890", time.Now())); err != nil {
		t.Fatalf("otp sent: %v", err)
	}

	if err := m.Verified(false); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected rejection without session, got %v", err)
	}
	if m.Screen() != ScreenOTP {
		t.Fatalf("machine must stay on otp, got %s", m.Screen())
	}

	if err := m.Verified(true); err != nil {
		t.Fatalf("verified: %v", err)
	}
	if m.Screen() != ScreenDashboard {
		t.Fatalf("expected dashboard, got %s", m.Screen())
	}
	if m.Challenge() != nil {
		t.Fatalf("challenge must be discarded after verification")
	}
}

func TestCancelOTPKeepsPrefillDiscardsChallenge(t *testing.T) {
	m := New(false)
	if err := m.OTPSent("1234567890", otp.NewChallenge("1234567890", time.Now())); err != nil {
		t.Fatalf("otp sent: %v", err)
	}
	if err := m.CancelOTP(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if m.Screen() != ScreenLogin {
		t.Fatalf("expected login, got %s", m.Screen())
	}
	if m.Challenge() != nil {
		t.Fatalf("challenge must be discarded on cancel")
	}
	if m.PrefillAccount() != "1234567890" {
		t.Fatalf("expected account kept for login prefill, got %q", m.PrefillAccount())
	}
}

func TestFreeNavigationClearsChallenge(t *testing.T) {
	m := New(false)
	if err := m.OTPSent("1234567890", otp.NewChallenge("1234567890", time.Now())); err != nil {
		t.Fatalf("otp sent: %v", err)
	}
	m.GoRegister()
	if m.Challenge() != nil {
		t.Fatalf("navigation must clear in-flight challenge")
	}
	m.GoLogin()
	if m.Screen() != ScreenLogin || m.PrefillAccount() != "" {
		t.Fatalf("expected clean login screen")
	}
}

func TestResendRestartsCountdownAndClearsDigits(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := New(false)
	if err := m.OTPSent("1234567890", otp.NewChallenge("1234567890", start)); err != nil {
		t.Fatalf("otp sent: %v", err)
	}
	m.Input().Paste("123456")

	later := start.Add(otp.ChallengeTTL + time.Second)
	if err := m.ResendAccepted(later); err != nil {
		t.Fatalf("resend: %v", err)
	}
	if m.Input().Code() != "" {
		t.Fatalf("expected digits cleared after resend")
	}
	if m.Challenge().CanResend(later) {
		t.Fatalf("expected countdown restarted")
	}
}

func TestRegistryReusesMachines(t *testing.T) {
	reg := NewRegistry()
	a := reg.Get("sid", false)
	b := reg.Get("sid", true)
	if a != b {
		t.Fatalf("expected the same machine per session")
	}
	reg.Drop("sid")
	c := reg.Get("sid", false)
	if c == a {
		t.Fatalf("expected a fresh machine after drop")
	}
}
