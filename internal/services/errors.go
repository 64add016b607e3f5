package services

import (
	"errors"
	"fmt"
)

// Error categories. Every sentinel below wraps exactly one of them so callers
// can map errors with errors.Is without knowing each sentinel.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
