// Package common contains shared constants and sentinel errors used across
// the pokegate authority, edge and client components.
package common

import "time"

const (
	// CookieName is the cookie that carries the signed session token.
	CookieName = "auth_token"

	// CookiePath makes the session cookie visible to every route.
	CookiePath = "/"

	// SessionLifetime is both the token lifetime and the cookie Max-Age.
	SessionLifetime = 24 * time.Hour

	// RequestIDHeaderName is propagated between the edge and the authority
	// so both access logs can be correlated.
	RequestIDHeaderName = "X-Request-ID"
)

// Routes shared by the authority, the edge proxy and the client.
const (
	LoginPath      = "/api/auth/login"
	LogoutPath     = "/api/auth/logout"
	StatusPath     = "/api/auth/status"
	PokemonAPIPath = "/api/pokemon"
)
