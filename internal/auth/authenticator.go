package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the admin password does not match.
var ErrInvalidCredentials = errors.New("invalid password")

// TokenVerifier is what the middleware needs to check bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// Authenticator checks the shared admin secret and issues tokens.
// There are no user accounts: one password grants the admin claim.
type Authenticator struct {
	password     string
	passwordHash []byte
	tokens       *JWTManager
}

// NewAuthenticator builds an authenticator. When passwordHash is set it is
// a bcrypt hash and takes precedence over the plain password.
func NewAuthenticator(password, passwordHash string, tokens *JWTManager) *Authenticator {
	a := &Authenticator{password: password, tokens: tokens}
	if passwordHash != "" {
		a.passwordHash = []byte(passwordHash)
	}
	return a
}

// Login returns a signed admin token when password matches.
func (a *Authenticator) Login(password string) (string, error) {
	if !a.matches(password) {
		return "", ErrInvalidCredentials
	}
	return a.tokens.GenerateToken()
}

// Verify decodes a token and checks signature and expiry.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	return a.tokens.ValidateToken(token)
}

func (a *Authenticator) matches(password string) bool {
	if len(a.passwordHash) > 0 {
		return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	}
	if a.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
