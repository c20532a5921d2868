package services

import (
	"errors"

	"github.com/dmitrijs2005/secondwear/internal/client/session"
)

var (
	// ErrNotAuthenticated is returned by operations that need a logged-in user.
	ErrNotAuthenticated = session.ErrNotAuthenticated
	// ErrStaleResponse marks a response that resolved after a newer request
	// of the same kind was issued. Its result was discarded.
	ErrStaleResponse = session.ErrStaleAttempt

	ErrNoHistory = errors.New("no more history in that direction")
)

// ValidationError is a form problem detected before any network call.
// Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
