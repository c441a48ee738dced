// Package auth verifies HTTP Basic credentials against a single
// configured account.
package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrUnauthorized is returned when credentials are missing or wrong.
var ErrUnauthorized = errors.New("invalid credentials")

// Verifier holds the expected username and password.
type Verifier struct {
	username []byte
	password []byte
}

// NewVerifier creates a Verifier for the given account.
func NewVerifier(username, password string) *Verifier {
	return &Verifier{
		username: []byte(username),
		password: []byte(password),
	}
}

// Verify checks both fields in constant time. Both comparisons always
// run, so a mismatched username does not short-circuit and leak which
// field was wrong through timing.
func (v *Verifier) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), v.username)
	passOK := subtle.ConstantTimeCompare([]byte(password), v.password)
	if userOK&passOK != 1 {
		return ErrUnauthorized
	}
	return nil
}
