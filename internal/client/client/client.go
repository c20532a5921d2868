package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Gateway sends requests to the marketplace API.
type Gateway interface {
	Call(ctx context.Context, path string, opts *RequestOptions) Result
}

// Credentials is the gateway's handle into the session: it reads the
// bearer token and triggers the forced logout on 401.
type Credentials interface {
	Token() string
	Expire(ctx context.Context)
}

// RequestOptions tune a single call. A nil *RequestOptions means GET with
// default headers.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Query   url.Values
	// Body is encoded as JSON; []byte and json.RawMessage are sent as is.
	Body any
	// Anonymous calls never carry a bearer token and a 401 on them is an
	// ordinary failure, not a session expiry. Used for login/register.
	Anonymous bool
	// FallbackError replaces DefaultFailureMessage when the server gives
	// no error text.
	FallbackError string
}

func (o *RequestOptions) method() string {
	if o == nil || o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

func (o *RequestOptions) fallback() string {
	if o == nil || o.FallbackError == "" {
		return DefaultFailureMessage
	}
	return o.FallbackError
}

// Result is the uniform envelope of a gateway call: either OK with the raw
// JSON body in Data, or not OK with a user-facing message in Error.
type Result struct {
	OK     bool
	Status int
	Data   json.RawMessage
	Error  string

	expired bool
}

// Expired reports whether the call ended the session.
func (r Result) Expired() bool {
	return r.expired
}

// Err converts a failed result into an error: ErrSessionExpired for a
// forced logout, *APIError otherwise. It returns nil for OK results.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	if r.expired {
		return ErrSessionExpired
	}
	return &APIError{Status: r.Status, Message: r.Error}
}

// Decode unmarshals Data into v. A failed result returns Err().
func (r Result) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
