// Package auth implements the token codec: HS256-signed, self-contained
// session tokens that assert a single subject for a fixed lifetime.
package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

// keyInfo binds derived signing keys to this token format, so the same
// configured secret never signs anything else.
const keyInfo = "pokegate auth_token HS256 v1"

// Claims is the payload of a session token. Only the registered claims are
// used: sub (identity), iat, exp and jti.
type Claims struct {
	jwt.RegisteredClaims
}

// IssuedAtTime returns the iat claim, or the zero time when absent.
func (c *Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Codec issues and verifies session tokens with a key derived from the
// process-wide signing secret. It is immutable after construction and safe
// for concurrent use.
type Codec struct {
	key      []byte
	lifetime time.Duration
	now      func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock replaces time.Now, mostly for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLifetime overrides the default 24h token lifetime.
func WithLifetime(d time.Duration) Option {
	return func(c *Codec) {
		if d > 0 {
			c.lifetime = d
		}
	}
}

// NewCodec derives the HMAC key from secret. An empty secret is a
// configuration error: there is no fallback key.
func NewCodec(secret []byte, opts ...Option) (*Codec, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: signing secret is empty", common.ErrConfiguration)
	}

	key, err := deriveKey(secret)
	if err != nil {
		return nil, err
	}

	c := &Codec{
		key:      key,
		lifetime: common.SessionLifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func deriveKey(secret []byte) ([]byte, error) {
	r := hkdf.New(sha256.New, secret, nil, []byte(keyInfo))
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return key, nil
}

// Lifetime reports how long issued tokens stay valid.
func (c *Codec) Lifetime() time.Duration {
	return c.lifetime
}

// Issue mints a token for subject valid from now until now+lifetime.
func (c *Codec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", common.ErrEmptySubject
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
			ID:        uuid.NewString(),
		},
	})

	tokenString, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks the signature and then the expiry of tokenString.
//
// Errors wrap exactly one of common.ErrTokenMalformed,
// common.ErrSignatureInvalid or common.ErrTokenExpired. The distinction is
// for logs only and must not reach clients.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if !token.Valid {
		return nil, common.ErrSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrTokenMalformed)
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", common.ErrSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", common.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", common.ErrTokenMalformed, err)
	}
}
