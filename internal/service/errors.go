package service

import (
	"errors"
	"sort"
	"strings"
)

// Shared authentication/authorization sentinels. Entity not-found sentinels
// live next to their service.
var (
	// ErrInvalidCredentials is returned for unknown users, wrong passwords
	// and inactive accounts alike; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	// ErrTokenInvalid covers malformed, expired and revoked tokens.
	ErrTokenInvalid = errors.New("token is invalid or expired")
	// ErrForbidden indicates an authenticated caller lacks permission.
	ErrForbidden = errors.New("insufficient permissions")
)

// ValidationError enumerates offending fields with human-readable reasons.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return e.Message + ": " + strings.Join(fields, ", ")
}

// NewValidationError builds a validation error over multiple fields.
func NewValidationError(message string, fields map[string]string) *ValidationError {
	if message == "" {
		message = "validation failed"
	}
	return &ValidationError{Message: message, Fields: fields}
}

// FieldError builds a validation error for a single field.
func FieldError(field, reason string) *ValidationError {
	return NewValidationError("validation failed", map[string]string{field: reason})
}

// AsValidationError unwraps a validation error when present.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
