package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/logging"
)

// DefaultAuthorityTimeout bounds a single status call to the authority.
const DefaultAuthorityTimeout = 3 * time.Second

const maxStatusBody = 64 << 10

// DelegatingVerifier asks the authority's status endpoint whether the
// forwarded cookies form a valid session. It never sees the secret, never
// retries and fails closed.
type DelegatingVerifier struct {
	statusURL string
	timeout   time.Duration
	client    *http.Client
	logger    logging.Logger
}

// NewDelegatingVerifier builds a verifier for the authority at authorityURL.
// A nil client means http.DefaultClient; a non-positive timeout means
// DefaultAuthorityTimeout.
func NewDelegatingVerifier(authorityURL string, timeout time.Duration, client *http.Client, logger logging.Logger) (*DelegatingVerifier, error) {
	u, err := url.Parse(authorityURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: invalid authority url %q", common.ErrConfiguration, authorityURL)
	}

	statusURL, err := url.JoinPath(u.String(), common.StatusPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConfiguration, err)
	}

	if timeout <= 0 {
		timeout = DefaultAuthorityTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &DelegatingVerifier{
		statusURL: statusURL,
		timeout:   timeout,
		client:    client,
		logger:    logger,
	}, nil
}

func (v *DelegatingVerifier) Verify(r *http.Request) Result {
	if _, ok := TokenFrom(r); !ok {
		return unauthenticated(common.ErrUnauthorized)
	}

	ctx, cancel := context.WithTimeout(r.Context(), v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.statusURL, nil)
	if err != nil {
		return Result{Kind: VerificationError, Reason: err}
	}
	req.Header.Set("Cookie", strings.Join(r.Header.Values("Cookie"), "; "))
	req.Header.Set("Accept", "application/json")
	if id := r.Header.Get(common.RequestIDHeaderName); id != "" {
		req.Header.Set(common.RequestIDHeaderName, id)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn(r.Context(), "authority status call failed", "error", err.Error())
		return unauthenticated(fmt.Errorf("%w: %w", common.ErrAuthorityUnreachable, err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return unauthenticated(common.ErrUnauthorized)
	default:
		v.logger.Warn(r.Context(), "unexpected authority status", "status", resp.StatusCode)
		return Result{Kind: VerificationError, Reason: fmt.Errorf("authority answered %d", resp.StatusCode)}
	}

	var body StatusResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxStatusBody)).Decode(&body); err != nil {
		v.logger.Warn(r.Context(), "unreadable authority status body", "error", err.Error())
		return Result{Kind: VerificationError, Reason: fmt.Errorf("decode status: %w", err)}
	}

	if !body.Success || body.User == nil || body.User.Username == "" {
		return unauthenticated(common.ErrUnauthorized)
	}

	return Result{Kind: Authenticated, Identity: &Identity{Username: body.User.Username}}
}
