// Package token issues and verifies the signed bearer tokens the service
// hands out at login and registration. Signature verification and expiry are
// deliberately separate steps: a tampered token and a merely expired one are
// different conditions for callers.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTTL = 24 * time.Hour

var (
	// ErrSignatureInvalid reports a MAC mismatch: the token was tampered
	// with or signed with a different key.
	ErrSignatureInvalid = errors.New("token signature invalid")
	// ErrMalformed reports a token that does not decode into the
	// header.payload.signature structure at all.
	ErrMalformed = errors.New("token malformed")
)

// Claims is the payload carried inside an issued token.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and parses HS256 tokens with a static symmetric key.
// Safe for unbounded concurrent use; the key is read-only after construction.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue builds and signs a token for subject with issued-at now and expiry
// now + TTL. The role travels as an extra claim.
func (c *Codec) Issue(subject, role string, now time.Time) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Parse verifies the token's signature and decodes its claims. Expiry is NOT
// checked here; an expired but authentic token parses successfully so callers
// can distinguish "bad token" from "expired token" via IsExpired.
func (c *Codec) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrSignatureInvalid
		}
		return nil, ErrMalformed
	}
	return claims, nil
}

// IsExpired reports whether claims are expired at instant now. A token is
// expired from its exact expiry instant onward; claims without an expiry are
// treated as expired.
func (c *Codec) IsExpired(claims *Claims, now time.Time) bool {
	if claims.ExpiresAt == nil {
		return true
	}
	return !now.Before(claims.ExpiresAt.Time)
}
