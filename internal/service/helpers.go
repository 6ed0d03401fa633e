package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// normalizePage clamps pagination inputs to sane bounds.
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// isDuplicateKey reports whether the database rejected a write for violating
// a unique constraint.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// validationErrorFrom converts validator tag failures into a field-keyed
// ValidationError. Non-validator errors are passed through unchanged.
func validationErrorFrom(err error) error {
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	fields := make(map[string]string, len(invalid))
	for _, fieldErr := range invalid {
		name := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			fields[name] = "this field is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "min":
			fields[name] = "value is too short"
		case "max":
			fields[name] = "value is too long"
		case "oneof":
			fields[name] = "must be one of: " + fieldErr.Param()
		case "gte":
			fields[name] = "must be at least " + fieldErr.Param()
		case "lte":
			fields[name] = "must be at most " + fieldErr.Param()
		default:
			fields[name] = "invalid value"
		}
	}
	return &ValidationError{Message: "validation failed", Fields: fields}
}
