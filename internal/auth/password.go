package auth

import "unicode"

// Strength is a password score in [0,5] with its display bucket. The score is
// the number of independent checks the password passes; adding a character
// class never lowers it.
type Strength struct {
	Score int
	Label string
	Class string
}

var strengthBuckets = []Strength{
	{Label: "Very Weak", Class: "strength-very-weak"},
	{Label: "Weak", Class: "strength-weak"},
	{Label: "Fair", Class: "strength-fair"},
	{Label: "Good", Class: "strength-good"},
	{Label: "Strong", Class: "strength-strong"},
}

// PasswordStrength scores a password against five independent checks: length
// of at least eight, a lowercase letter, an uppercase letter, a digit and a
// symbol.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{}
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if ok {
			score++
		}
	}

	bucket := strengthBuckets[min(score, len(strengthBuckets)-1)]
	return Strength{Score: score, Label: bucket.Label, Class: bucket.Class}
}
