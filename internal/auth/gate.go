// Package auth implements the admin session gate and the password and
// access-code digests backing it. The platform has exactly one privileged
// identity; tokens carry a fixed subject and expire after seven days, which
// is the only invalidation mechanism (no server-side revocation).
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the lifetime of an issued session token and of the
// cookie that carries it.
const TokenValidity = 7 * 24 * time.Hour

// Subject is the fixed identity recorded on every issued token.
const Subject = "admin"

// ErrSecretRequired indicates the gate was built without a signing secret.
var ErrSecretRequired = errors.New("auth: signing secret is required")

// Gate issues and verifies admin session tokens.
type Gate struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// Option mutates the Gate configuration.
type Option func(*Gate)

// WithValidity overrides the token lifetime (defaults to TokenValidity).
func WithValidity(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.validity = d
		}
	}
}

// WithClock overrides the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGate builds a gate that signs tokens with the supplied secret.
func NewGate(secret string, opts ...Option) (*Gate, error) {
	if secret == "" {
		return nil, ErrSecretRequired
	}
	gate := &Gate{
		secret:   []byte(secret),
		validity: TokenValidity,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(gate)
		}
	}
	return gate, nil
}

// IssueToken returns a signed HS256 token for the admin subject.
func (g *Gate) IssueToken() (string, error) {
	now := g.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   Subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.validity)),
	})
	return token.SignedString(g.secret)
}

// Verify reports whether the token is well formed, correctly signed, and
// unexpired. Failure reasons are deliberately not distinguished so callers
// cannot leak validation internals.
func (g *Gate) Verify(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return g.secret, nil
	}, jwt.WithTimeFunc(g.now))
	if err != nil {
		return false
	}
	return token.Valid
}

// HashSecret produces the hex sha256 digest used for both the admin
// password and document access codes.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifySecret compares a plaintext secret against a stored hex digest in
// constant time.
func VerifySecret(secret, hash string) bool {
	computed := HashSecret(secret)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
