// Package session decides whether an inbound request carries a valid
// session. Two verifiers exist: DirectVerifier checks the token locally with
// the signing secret, DelegatingVerifier asks the authority over HTTP.
package session

import (
	"net/http"
)

// Identity is the authenticated principal. Only the username is known.
type Identity struct {
	Username string `json:"username"`
}

// Kind classifies a verification outcome.
type Kind int

const (
	Unauthenticated Kind = iota
	Authenticated
	VerificationError
)

func (k Kind) String() string {
	switch k {
	case Authenticated:
		return "authenticated"
	case VerificationError:
		return "verification_error"
	default:
		return "unauthenticated"
	}
}

// Result is the outcome of verifying a single request. It is built per
// request and never cached.
//
// Invalid is set only when a token was present and rejected locally, which
// lets the gate answer 403 instead of 401. Reason is for logs.
type Result struct {
	Kind     Kind
	Identity *Identity
	Reason   error
	Invalid  bool
}

// OK reports whether the request is authenticated.
func (r Result) OK() bool {
	return r.Kind == Authenticated && r.Identity != nil
}

// Verifier inspects the request cookies and reports the session state.
// Implementations must be safe for concurrent use.
type Verifier interface {
	Verify(r *http.Request) Result
}

// StatusResponse is the body of GET /api/auth/status.
type StatusResponse struct {
	Success bool      `json:"success"`
	User    *Identity `json:"user,omitempty"`
}

func unauthenticated(reason error) Result {
	return Result{Kind: Unauthenticated, Reason: reason}
}
