package common

import "errors"

var (
	// Repository-level and collaborator errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Credential errors. Unknown user and wrong secret are never distinguished.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token codec errors. These stay internal: callers outside the codec
	// only ever see "not authenticated".
	ErrEmptySubject     = errors.New("empty subject")
	ErrTokenMalformed   = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")

	// Split deployment errors.
	ErrAuthorityUnreachable = errors.New("authority unreachable")

	// Startup errors.
	ErrConfiguration = errors.New("configuration error")
)
