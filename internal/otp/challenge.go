package otp

import (
	"fmt"
	"time"
)

// ChallengeTTL is the passcode validity window. The API issues codes that
// expire after this long, and the verify screen counts it down. Product
// constant, defined once.
const ChallengeTTL = 120 * time.Second

// Challenge is the transient state of a pending OTP verification. It exists
// only in process memory between "credentials accepted" and either successful
// verification, explicit navigation back to login, or expiry.
type Challenge struct {
	AccountNumber string
	IssuedAt      time.Time
	Message       string
	DebugCode     string
}

// NewChallenge starts the countdown for an account.
func NewChallenge(accountNumber string, now time.Time) *Challenge {
	return &Challenge{AccountNumber: accountNumber, IssuedAt: now}
}

// Remaining returns the time left before the code expires, clamped at zero.
func (c *Challenge) Remaining(now time.Time) time.Duration {
	left := ChallengeTTL - now.Sub(c.IssuedAt)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the countdown has reached zero.
func (c *Challenge) Expired(now time.Time) bool {
	return c.Remaining(now) == 0
}

// CanResend reports whether the resend action is enabled. Resend unlocks
// exactly when the countdown expires.
func (c *Challenge) CanResend(now time.Time) bool {
	return c.Expired(now)
}

// Restart resets the countdown after a successful resend.
func (c *Challenge) Restart(now time.Time) {
	c.IssuedAt = now
}

// FormatRemaining renders a duration as m:ss for the countdown display.
func FormatRemaining(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
