package netx

import (
	"net/http"
	"time"
)

// NewClient returns an HTTP client for calls to the authority. Redirects
// are returned to the caller rather than followed, so a proxied 3xx reaches
// the browser unchanged.
func NewClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 32
	transport.IdleConnTimeout = 90 * time.Second

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
