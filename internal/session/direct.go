package session

import (
	"net/http"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/server/auth"
)

// TokenVerifier is the part of auth.Codec the direct verifier needs.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// DirectVerifier checks the session token in-process. Only the authority
// uses it, since it needs the signing key.
type DirectVerifier struct {
	codec  TokenVerifier
	logger logging.Logger
}

func NewDirectVerifier(codec TokenVerifier, logger logging.Logger) *DirectVerifier {
	return &DirectVerifier{codec: codec, logger: logger}
}

func (v *DirectVerifier) Verify(r *http.Request) Result {
	token, ok := TokenFrom(r)
	if !ok {
		return unauthenticated(common.ErrUnauthorized)
	}

	claims, err := v.codec.Verify(token)
	if err != nil {
		v.logger.Debug(r.Context(), "session token rejected", "path", r.URL.Path, "reason", err.Error())
		return Result{Kind: Unauthenticated, Reason: err, Invalid: true}
	}

	return Result{Kind: Authenticated, Identity: &Identity{Username: claims.Subject}}
}

// TokenFrom returns the non-empty auth_token cookie value.
func TokenFrom(r *http.Request) (string, bool) {
	c, err := r.Cookie(common.CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
