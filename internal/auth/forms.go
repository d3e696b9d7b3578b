package auth

import (
	"errors"
	"regexp"
	"strings"
)

var (
	accountNumberPattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern         = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// LoginForm carries the credential fields submitted from the login screen.
type LoginForm struct {
	AccountNumber string
	Password      string
}

// Validate checks the form locally. A failing form never reaches the API.
func (f LoginForm) Validate() error {
	if f.AccountNumber == "" || f.Password == "" {
		return errors.New("Please fill in all fields")
	}
	if !accountNumberPattern.MatchString(f.AccountNumber) {
		return errors.New("Account number must be exactly 10 digits")
	}
	return nil
}

// RegisterForm carries the fields submitted from the registration screen.
type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate applies the registration rules in order; the first failing rule
// wins.
func (f RegisterForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "" {
		return errors.New("Please fill in all fields")
	}
	if len(f.Name) < 2 {
		return errors.New("Name must be at least 2 characters long")
	}
	if !emailPattern.MatchString(f.Email) {
		return errors.New("Please enter a valid email address")
	}
	if len(f.Password) < 8 {
		return errors.New("Password must be at least 8 characters long")
	}
	if f.Password != f.ConfirmPassword {
		return errors.New("Passwords do not match")
	}
	return nil
}

// Normalized returns the payload fields the API expects: trimmed name and a
// lower-cased email.
func (f RegisterForm) Normalized() (name, email string) {
	return strings.TrimSpace(f.Name), strings.ToLower(strings.TrimSpace(f.Email))
}
