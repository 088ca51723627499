// Package proxy relays the session endpoints from the edge to the
// authority. Cookies travel verbatim in both directions: the inbound Cookie
// header goes up, every Set-Cookie header comes back.
package proxy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/logging"
	"github.com/gin-gonic/gin"
)

const maxRequestBody = 1 << 20

// Request headers copied to the authority besides Cookie.
var forwardedRequestHeaders = []string{"Content-Type", "Accept", "User-Agent", common.RequestIDHeaderName}

// Response headers copied back besides Set-Cookie.
var forwardedResponseHeaders = []string{"Content-Type", "Cache-Control"}

type Proxy struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	logger  logging.Logger
}

// New returns a proxy to the authority at authorityURL. A non-positive
// timeout leaves only the client's own timeout in effect.
func New(authorityURL string, client *http.Client, timeout time.Duration, logger logging.Logger) (*Proxy, error) {
	u, err := url.Parse(authorityURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: invalid authority url %q", common.ErrConfiguration, authorityURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Proxy{base: u, client: client, timeout: timeout, logger: logger}, nil
}

// Register mounts login, logout and status on the /api/auth group.
func (p *Proxy) Register(rg *gin.RouterGroup) {
	rg.POST("/login", p.Forward)
	rg.POST("/logout", p.Forward)
	rg.GET("/status", p.Forward)
}

// Forward sends the request to the same path on the authority and relays
// the answer. Transport failures become a generic 500. Nothing is retried.
func (p *Proxy) Forward(c *gin.Context) {
	ctx := c.Request.Context()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var body io.Reader
	if c.Request.Body != nil && c.Request.Body != http.NoBody && c.Request.ContentLength != 0 {
		body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
	}

	req, err := http.NewRequestWithContext(ctx, c.Request.Method, p.target(c.Request.URL), body)
	if err != nil {
		p.fail(c, err)
		return
	}
	if body != nil {
		req.ContentLength = c.Request.ContentLength
	}

	for _, h := range forwardedRequestHeaders {
		if v := c.Request.Header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}
	if cookies := c.Request.Header.Values("Cookie"); len(cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(cookies, "; "))
	}
	req.Header.Set("X-Forwarded-For", c.ClientIP())

	resp, err := p.client.Do(req)
	if err != nil {
		p.fail(c, err)
		return
	}
	defer resp.Body.Close()

	header := c.Writer.Header()
	for _, sc := range resp.Header.Values("Set-Cookie") {
		header.Add("Set-Cookie", sc)
	}
	for _, h := range forwardedResponseHeaders {
		if v := resp.Header.Get(h); v != "" {
			header.Set(h, v)
		}
	}

	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		p.logger.Warn(c.Request.Context(), "relaying authority response failed", "path", c.Request.URL.Path, "error", err.Error())
	}
}

func (p *Proxy) target(in *url.URL) string {
	u := *p.base
	u.Path = strings.TrimRight(p.base.Path, "/") + in.Path
	u.RawPath = ""
	u.RawQuery = in.RawQuery
	return u.String()
}

func (p *Proxy) fail(c *gin.Context, err error) {
	p.logger.Error(c.Request.Context(), "authority unreachable", "path", c.Request.URL.Path, "error", fmt.Errorf("%w: %w", common.ErrAuthorityUnreachable, err).Error())
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
