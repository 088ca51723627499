// Package users validates credentials and issues session tokens.
package users

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/session"
)

// TokenIssuer mints a signed token for an authenticated subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// CredentialValidator is implemented by Validator.
type CredentialValidator interface {
	Validate(subject, secret string) (*session.Identity, error)
}

// Session is what a successful login hands to the transport layer.
type Session struct {
	Token    string
	Identity *session.Identity
	Cookie   session.CookieAttributes
}

type Service struct {
	validator CredentialValidator
	issuer    TokenIssuer
	policy    session.CookiePolicy
}

func NewService(validator CredentialValidator, issuer TokenIssuer, policy session.CookiePolicy) *Service {
	return &Service{validator: validator, issuer: issuer, policy: policy}
}

// Login checks the credentials and issues a session. It fails with
// common.ErrInvalidCredentials for any credential mismatch and
// common.ErrorInternal when signing fails.
func (s *Service) Login(ctx context.Context, subject, secret string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	identity, err := s.validator.Validate(subject, secret)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	token, err := s.issuer.Issue(identity.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{
		Token:    token,
		Identity: identity,
		Cookie:   s.policy.Cookie(token),
	}, nil
}

// Logout returns the cookie that clears the session. Tokens are stateless,
// so an issued token stays valid until it expires.
func (s *Service) Logout() session.CookieAttributes {
	return s.policy.Clear()
}
