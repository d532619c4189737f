// Package apperr holds the sentinel errors shared by the domain packages.
// Services wrap them with context using fmt.Errorf("...: %w", err); the REST
// layer maps them onto HTTP status codes with errors.Is.
package apperr

import "errors"

var (
	// ErrNotFound indicates an entity does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or out of range input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState indicates the entity cannot make the requested transition.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnauthorized indicates missing or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the caller may not act on the entity.
	ErrForbidden = errors.New("forbidden")
)
