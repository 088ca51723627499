package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/dmitrijs2005/pokegate/internal/server/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeCodec struct {
	calls   atomic.Int32
	subject string
	err     error
}

func (f *fakeCodec) Verify(string) (*auth.Claims, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: f.subject}}, nil
}

func requestWithCookie(value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/pokemon", nil)
	if value != "" {
		r.AddCookie(&http.Cookie{Name: common.CookieName, Value: value})
	}
	return r
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "verification_error", VerificationError.String())
}

func TestDirectVerifier_NoCookie_SkipsCodec(t *testing.T) {
	codec := &fakeCodec{subject: "admin"}
	v := NewDirectVerifier(codec, nopLogger{})

	res := v.Verify(requestWithCookie(""))

	assert.Equal(t, Unauthenticated, res.Kind)
	assert.False(t, res.Invalid)
	assert.Nil(t, res.Identity)
	assert.Zero(t, codec.calls.Load())
}

func TestDirectVerifier_OtherCookiesOnly(t *testing.T) {
	codec := &fakeCodec{subject: "admin"}
	v := NewDirectVerifier(codec, nopLogger{})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})

	res := v.Verify(r)
	assert.Equal(t, Unauthenticated, res.Kind)
	assert.Zero(t, codec.calls.Load())
}

func TestDirectVerifier_RejectedToken_IsInvalid(t *testing.T) {
	for _, reason := range []error{common.ErrTokenExpired, common.ErrSignatureInvalid, common.ErrTokenMalformed} {
		codec := &fakeCodec{err: reason}
		v := NewDirectVerifier(codec, nopLogger{})

		res := v.Verify(requestWithCookie("tok"))

		assert.Equal(t, Unauthenticated, res.Kind)
		assert.True(t, res.Invalid)
		assert.ErrorIs(t, res.Reason, reason)
		assert.False(t, res.OK())
	}
}

func TestDirectVerifier_ValidToken(t *testing.T) {
	codec := &fakeCodec{subject: "admin"}
	v := NewDirectVerifier(codec, nopLogger{})

	res := v.Verify(requestWithCookie("tok"))

	require.True(t, res.OK())
	assert.Equal(t, "admin", res.Identity.Username)
	assert.EqualValues(t, 1, codec.calls.Load())
}

func TestDirectVerifier_WithRealCodec(t *testing.T) {
	issuer, err := auth.NewCodec([]byte("secret-a"))
	require.NoError(t, err)
	other, err := auth.NewCodec([]byte("secret-b"))
	require.NoError(t, err)

	tok, err := issuer.Issue("admin")
	require.NoError(t, err)

	assert.True(t, NewDirectVerifier(issuer, nopLogger{}).Verify(requestWithCookie(tok)).OK())

	res := NewDirectVerifier(other, nopLogger{}).Verify(requestWithCookie(tok))
	assert.True(t, res.Invalid)
	assert.ErrorIs(t, res.Reason, common.ErrSignatureInvalid)
}

func TestCookiePolicy_Development(t *testing.T) {
	c := NewCookiePolicy(false).Cookie("tok").HTTPCookie()

	assert.Equal(t, "auth_token=tok; Path=/; Max-Age=86400; HttpOnly; SameSite=Lax", c.String())
}

func TestCookiePolicy_Production(t *testing.T) {
	c := NewCookiePolicy(true).Cookie("tok").HTTPCookie()

	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.Equal(t, "auth_token=tok; Path=/; Max-Age=86400; HttpOnly; Secure; SameSite=Strict", c.String())
}

func TestCookiePolicy_Clear(t *testing.T) {
	c := NewCookiePolicy(false).Clear().HTTPCookie()

	s := c.String()
	assert.Contains(t, s, "auth_token=;")
	assert.Contains(t, s, "Max-Age=0")
	assert.Contains(t, s, "HttpOnly")
	assert.Contains(t, s, "Path=/")
}

func TestCookiePolicy_CustomMaxAge(t *testing.T) {
	p := CookiePolicy{MaxAge: time.Hour}
	assert.Equal(t, 3600, p.Cookie("x").MaxAge)

	assert.Equal(t, 86400, CookiePolicy{}.Cookie("x").MaxAge)
}

func newDelegating(t *testing.T, url string, timeout time.Duration) *DelegatingVerifier {
	t.Helper()
	v, err := NewDelegatingVerifier(url, timeout, nil, nopLogger{})
	require.NoError(t, err)
	return v
}

func TestDelegatingVerifier_NoCookie_NoNetworkHop(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	res := newDelegating(t, srv.URL, time.Second).Verify(requestWithCookie(""))

	assert.Equal(t, Unauthenticated, res.Kind)
	assert.Zero(t, hits.Load())
}

func TestDelegatingVerifier_Authenticated_ForwardsCookieHeader(t *testing.T) {
	var gotCookie, gotPath, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(common.RequestIDHeaderName)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"user":{"username":"admin"}}`))
	}))
	defer srv.Close()

	r := requestWithCookie("tok")
	r.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	r.Header.Set(common.RequestIDHeaderName, "req-1")

	res := newDelegating(t, srv.URL, time.Second).Verify(r)

	require.True(t, res.OK())
	assert.Equal(t, "admin", res.Identity.Username)
	assert.Equal(t, common.StatusPath, gotPath)
	assert.Equal(t, "auth_token=tok; theme=dark", gotCookie)
	assert.Equal(t, "req-1", gotRequestID)
	assert.False(t, res.Invalid)
}

func TestDelegatingVerifier_SuccessFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	res := newDelegating(t, srv.URL, time.Second).Verify(requestWithCookie("tok"))

	assert.Equal(t, Unauthenticated, res.Kind)
	assert.False(t, res.Invalid)
}

func TestDelegatingVerifier_AuthorityRejects(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))

		res := newDelegating(t, srv.URL, time.Second).Verify(requestWithCookie("tok"))
		srv.Close()

		assert.Equal(t, Unauthenticated, res.Kind, "status %d", code)
	}
}

func TestDelegatingVerifier_UnexpectedResponses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"teapot", http.StatusTeapot, ``},
		{"not json", http.StatusOK, `<html>hello</html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			res := newDelegating(t, srv.URL, time.Second).Verify(requestWithCookie("tok"))

			assert.Equal(t, VerificationError, res.Kind)
			assert.False(t, res.OK())
		})
	}
}

func TestDelegatingVerifier_Unreachable_FailsClosedWithoutRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				_ = conn.Close()
			}
		}
	}))
	defer srv.Close()

	res := newDelegating(t, srv.URL, time.Second).Verify(requestWithCookie("tok"))

	assert.Equal(t, Unauthenticated, res.Kind)
	assert.ErrorIs(t, res.Reason, common.ErrAuthorityUnreachable)
	assert.LessOrEqual(t, hits.Load(), int32(1))
}

func TestDelegatingVerifier_ClosedPort(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	res := newDelegating(t, url, time.Second).Verify(requestWithCookie("tok"))

	assert.Equal(t, Unauthenticated, res.Kind)
	assert.ErrorIs(t, res.Reason, common.ErrAuthorityUnreachable)
}

func TestDelegatingVerifier_Timeout(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	res := newDelegating(t, srv.URL, 50*time.Millisecond).Verify(requestWithCookie("tok"))

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, Unauthenticated, res.Kind)
	assert.True(t, errors.Is(res.Reason, common.ErrAuthorityUnreachable))
	assert.EqualValues(t, 1, hits.Load())
}

func TestNewDelegatingVerifier_RejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "127.0.0.1:8081", "ftp://host", "http://"} {
		_, err := NewDelegatingVerifier(u, time.Second, nil, nopLogger{})
		assert.ErrorIs(t, err, common.ErrConfiguration, "url %q", u)
	}
}

func TestNewDelegatingVerifier_DefaultTimeout(t *testing.T) {
	v, err := NewDelegatingVerifier("http://127.0.0.1:8081/", 0, nil, nopLogger{})
	require.NoError(t, err)

	assert.Equal(t, DefaultAuthorityTimeout, v.timeout)
	assert.Equal(t, "http://127.0.0.1:8081/api/auth/status", v.statusURL)
}
