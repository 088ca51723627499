package users

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/dmitrijs2005/pokegate/internal/common"
	"github.com/dmitrijs2005/pokegate/internal/session"
)

// Validator checks submitted credentials against the single configured
// account.
type Validator struct {
	username [sha256.Size]byte
	password [sha256.Size]byte
	name     string
}

func NewValidator(username, password string) *Validator {
	return &Validator{
		username: sha256.Sum256([]byte(username)),
		password: sha256.Sum256([]byte(password)),
		name:     username,
	}
}

// Validate returns the identity for a matching pair. Both fields are always
// compared so the timing does not reveal which one was wrong.
func (v *Validator) Validate(subject, secret string) (*session.Identity, error) {
	u := sha256.Sum256([]byte(subject))
	p := sha256.Sum256([]byte(secret))

	userOK := subtle.ConstantTimeCompare(u[:], v.username[:])
	passOK := subtle.ConstantTimeCompare(p[:], v.password[:])

	if userOK&passOK != 1 {
		return nil, common.ErrInvalidCredentials
	}

	return &session.Identity{Username: v.name}, nil
}
