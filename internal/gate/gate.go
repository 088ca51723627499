// Package gate turns a session.Verifier outcome into an HTTP decision:
// pass through with the identity attached, a JSON rejection for API routes,
// or a redirect for pages.
package gate

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/session"
	"github.com/gin-gonic/gin"
)

// Client-facing rejection messages. They never say why a token failed.
const (
	MessageNoToken      = "Unauthorized: No token provided"
	MessageInvalidToken = "Forbidden: Invalid or expired token"
)

// IdentityKey is the gin context key holding *session.Identity.
const IdentityKey = "identity"

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *session.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFrom returns the identity attached by a gate earlier in the chain.
func IdentityFrom(ctx context.Context) (*session.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*session.Identity)
	return id, ok && id != nil
}

// CurrentIdentity returns the identity of a gated gin request, or nil.
func CurrentIdentity(c *gin.Context) *session.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(*session.Identity); ok {
			return id
		}
	}
	id, _ := IdentityFrom(c.Request.Context())
	return id
}

// Rejection maps a failed verification to a status code and message.
// Only a locally rejected token yields 403.
func Rejection(res session.Result) (int, string) {
	if res.Invalid {
		return http.StatusForbidden, MessageInvalidToken
	}
	return http.StatusUnauthorized, MessageNoToken
}

func attach(c *gin.Context, id *session.Identity) {
	c.Set(IdentityKey, id)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
}

func logFailure(ctx context.Context, logger logging.Logger, r *http.Request, res session.Result) {
	if res.Kind == session.VerificationError {
		logger.Warn(ctx, "session verification error", "path", r.URL.Path, "reason", errString(res.Reason))
		return
	}
	logger.Debug(ctx, "request not authenticated", "path", r.URL.Path, "invalid", res.Invalid, "reason", errString(res.Reason))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// API guards JSON routes. Unauthenticated requests are aborted with 401 or
// 403; authenticated ones continue with the identity attached. An identity
// already attached by Edge is reused.
func API(v session.Verifier, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := IdentityFrom(c.Request.Context()); ok {
			c.Set(IdentityKey, id)
			c.Next()
			return
		}

		res := v.Verify(c.Request)
		if !res.OK() {
			logFailure(c.Request.Context(), logger, c.Request, res)
			status, msg := Rejection(res)
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		attach(c, res.Identity)
		c.Next()
	}
}

// Page guards server-rendered pages. Unauthenticated visitors are sent to
// loginPath with the original location in the next parameter.
func Page(v session.Verifier, loginPath string, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := IdentityFrom(c.Request.Context()); ok {
			c.Set(IdentityKey, id)
			c.Next()
			return
		}

		res := v.Verify(c.Request)
		if !res.OK() {
			logFailure(c.Request.Context(), logger, c.Request, res)
			c.Redirect(http.StatusSeeOther, LoginRedirect(loginPath, c.Request.URL))
			c.Abort()
			return
		}

		attach(c, res.Identity)
		c.Next()
	}
}

// GuestOnly keeps signed-in users away from the login surface.
func GuestOnly(v session.Verifier, homePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v.Verify(c.Request).OK() {
			c.Redirect(http.StatusSeeOther, homePath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRedirect builds loginPath?next=<path and query of u>.
func LoginRedirect(loginPath string, u *url.URL) string {
	next := u.RequestURI()
	if next == "" {
		next = "/"
	}
	return loginPath + "?next=" + url.QueryEscape(next)
}

// SafeNext returns next when it is a local absolute path, fallback
// otherwise. It keeps the login form from redirecting off-site.
func SafeNext(next, fallback string) string {
	if next == "" || next[0] != '/' || len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
