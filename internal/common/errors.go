// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorDuplicate marks a report that repeats one the same user already filed.
	ErrorDuplicate = errors.New("duplicate report")

	// ErrorState is returned when an operation runs outside the session state
	// it requires, e.g. answering recovery questions without a pending target.
	ErrorState = errors.New("invalid session state")
)

// UserError pairs a sentinel with the message shown to the client.
// errors.Is matches the sentinel; Error returns the message.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Kind }

// NewUserError returns a *UserError of the given kind.
func NewUserError(kind error, message string) error {
	return &UserError{Kind: kind, Message: message}
}
