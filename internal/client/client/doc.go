// Package client is the single choke point between the marketplace client
// and the remote HTTP API.
//
// # Overview
//
//  1. Gateway is the transport contract used by the services: Call sends a
//     JSON request and always returns a Result, never an error or panic.
//  2. HTTPClient is the net/http implementation. It resolves paths against
//     the configured base URL, attaches the bearer token of the current
//     session, tags requests with X-Request-ID and normalizes every outcome
//     into a Result.
//  3. InitDatabase and RunMigrations bootstrap the local SQLite database
//     with embedded goose migrations.
//
// # Error Handling
//
// An HTTP 401 on an authorized call makes the gateway expire the session
// (forced logout) and report ErrSessionExpired. Other non-2xx answers carry
// the server's "error" field verbatim as an *APIError. Transport and decode
// failures become an *APIError with Status 0 that matches ErrUnavailable.
package client
