// Package service holds the business rules behind the HTTP handlers. Every
// failure is one of the sentinel errors below, wrapped with context; the
// handlers map them to status codes with errors.Is.
package service

import (
	"errors"
	"fmt"

	"cocktail-bar-api/repository"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
)

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeErr maps repository sentinels onto service sentinels and keeps the
// entity name in the message.
func storeErr(entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %s", ErrConflict, entity)
	default:
		return fmt.Errorf("%s store: %w", entity, err)
	}
}
