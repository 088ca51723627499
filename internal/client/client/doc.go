// Package client talks to a pokegate deployable (edge or authority) over
// HTTP on behalf of the terminal client.
//
// # Overview
//
// HTTPClient keeps the session cookie in an in-memory cookie jar, so after
// Login every request carries the token exactly like a browser would. The
// client never inspects or stores the token itself.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrInvalidCredentials,
// ErrNotFound.
//
// See Also
//
//   - Interface: Client
//   - HTTP impl: HTTPClient
package client
