// Package common defines sentinel errors and small helpers shared by the
// storage, service and CLI layers of DocLocker. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Credential errors.
	ErrUnauthorized     = errors.New("invalid username or password")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already registered")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Document errors.
	ErrInvalidCategory   = errors.New("invalid category")
	ErrDestinationExists = errors.New("destination already exists")
	// ErrContentMissing means the catalog record exists but its stored file
	// does not. It is distinct from ErrNotFound.
	ErrContentMissing = errors.New("stored file is missing")

	// Input validation errors.
	ErrValidation = errors.New("validation error")
)

// ValidationError lists human-readable problems found in a request.
// It matches ErrValidation via errors.Is.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a ValidationError from one or more problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}
