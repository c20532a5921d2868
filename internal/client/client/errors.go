package client

import "errors"

const (
	SessionExpiredMessage = "Session expired. Please login again."
	DefaultFailureMessage = "API call failed"
)

var (
	ErrSessionExpired = errors.New(SessionExpiredMessage)
	ErrUnavailable    = errors.New("server unavailable")
)

// APIError is a failed call. Message is the user-facing text: the server's
// error field, a fallback, or the transport failure. Status is 0 when no
// HTTP response was received.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	if e.Status == 0 {
		return ErrUnavailable
	}
	return nil
}
