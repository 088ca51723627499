package session

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/common"
)

// CookiePolicy decides the attributes of the session cookie.
type CookiePolicy struct {
	Production bool
	MaxAge     time.Duration
}

// NewCookiePolicy returns the policy for the given environment with the
// default 24h lifetime.
func NewCookiePolicy(production bool) CookiePolicy {
	return CookiePolicy{Production: production, MaxAge: common.SessionLifetime}
}

// CookieAttributes describes a Set-Cookie header for the session cookie.
type CookieAttributes struct {
	Name     string
	Value    string
	Path     string
	MaxAge   int
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
}

func (p CookiePolicy) sameSite() http.SameSite {
	if p.Production {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

// Cookie returns the attributes that carry token to the browser.
func (p CookiePolicy) Cookie(token string) CookieAttributes {
	maxAge := p.MaxAge
	if maxAge <= 0 {
		maxAge = common.SessionLifetime
	}
	return CookieAttributes{
		Name:     common.CookieName,
		Value:    token,
		Path:     common.CookiePath,
		MaxAge:   int(maxAge / time.Second),
		HTTPOnly: true,
		Secure:   p.Production,
		SameSite: p.sameSite(),
	}
}

// Clear returns attributes that make the browser drop the session cookie.
func (p CookiePolicy) Clear() CookieAttributes {
	return CookieAttributes{
		Name:     common.CookieName,
		Path:     common.CookiePath,
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   p.Production,
		SameSite: p.sameSite(),
	}
}

// HTTPCookie converts the attributes for http.SetCookie. A negative MaxAge
// is written as "Max-Age=0".
func (a CookieAttributes) HTTPCookie() *http.Cookie {
	c := &http.Cookie{
		Name:     a.Name,
		Value:    a.Value,
		Path:     a.Path,
		MaxAge:   a.MaxAge,
		HttpOnly: a.HTTPOnly,
		Secure:   a.Secure,
		SameSite: a.SameSite,
	}
	if a.MaxAge < 0 {
		c.Expires = time.Unix(0, 0)
	}
	return c
}
