package service

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateEmail indicates a registration against an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases must stay indistinguishable so clients
	// cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrMissingToken indicates no bearer token was supplied.
	ErrMissingToken = errors.New("no token provided")
)

// ValidationError reports the first request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
