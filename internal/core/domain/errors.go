package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrUserExists           = errors.New("user already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrForbidden            = errors.New("access forbidden")
	ErrTooManyAttempts      = errors.New("too many failed login attempts")
)

// ValidationError describes why an input was rejected. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validationf is NewValidationError with formatting.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
