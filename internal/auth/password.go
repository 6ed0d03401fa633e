package auth

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
	bcryptCost        = 12
)

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("password does not match")

// commonPasswords holds frequently leaked passwords rejected outright.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"qwerty123":   {},
	"letmein123":  {},
	"iloveyou":    {},
	"admin123":    {},
	"welcome1":    {},
	"abc12345":    {},
	"changeme":    {},
}

// HashPassword produces a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword checks the password against its stored hash.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}

// ValidatePasswordStrength enforces the password policy: minimum length, not
// purely numeric, not a common password, and not too similar to any of the
// supplied user attributes (username, email, names).
func ValidatePasswordStrength(password string, userAttributes ...string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}

	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return errors.New("password cannot be entirely numeric")
	}

	lowered := strings.ToLower(password)
	if _, found := commonPasswords[lowered]; found {
		return errors.New("password is too common")
	}

	for _, attribute := range userAttributes {
		attr := strings.ToLower(strings.TrimSpace(attribute))
		if len(attr) < 4 {
			continue
		}
		if strings.Contains(lowered, attr) || strings.Contains(attr, lowered) {
			return errors.New("password is too similar to account details")
		}
		// Also compare against the local part of an email address.
		if at := strings.IndexByte(attr, '@'); at > 3 {
			local := attr[:at]
			if strings.Contains(lowered, local) || strings.Contains(local, lowered) {
				return errors.New("password is too similar to account details")
			}
		}
	}

	return nil
}
