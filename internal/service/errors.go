package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by AuthService matches exactly one of them via errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInfrastructure     = errors.New("infrastructure error")
)

// Specific failures, each wrapping its kind.
var (
	ErrCredentialsRequired = fmt.Errorf("%w: username and password are required", ErrValidation)
	ErrEmptyUsername       = fmt.Errorf("%w: empty username", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: empty password", ErrValidation)
	ErrUsernameTaken       = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrUserNotFound        = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrInvalidPassword     = fmt.Errorf("%w: invalid password", ErrInvalidCredentials)
	ErrInvalidToken        = fmt.Errorf("%w: invalid token", ErrInvalidCredentials)
)

// infraError tags err as an infrastructure failure while keeping the cause inspectable.
func infraError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInfrastructure, op, err)
}
