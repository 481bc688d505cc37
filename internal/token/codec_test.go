package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testNow = time.Unix(1700000000, 0).UTC()

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	raw, err := codec.Issue("alice", "USER", testNow)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Count(raw, ".") != 2 {
		t.Fatalf("expected three-segment token, got %q", raw)
	}

	claims, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Subject)
	}
	if claims.Role != "USER" {
		t.Fatalf("expected role USER, got %q", claims.Role)
	}
	if !claims.IssuedAt.Time.Equal(testNow) {
		t.Fatalf("unexpected iat: %v", claims.IssuedAt.Time)
	}
	if !claims.ExpiresAt.Time.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("unexpected exp: %v", claims.ExpiresAt.Time)
	}
}

func TestCodec_ParseIdempotent(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	raw, _ := codec.Issue("alice", "USER", testNow)

	first, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if first.Subject != second.Subject || !first.ExpiresAt.Time.Equal(second.ExpiresAt.Time) {
		t.Fatalf("parses disagree: %+v vs %+v", first, second)
	}
}

func TestCodec_TamperedPayload(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	raw, _ := codec.Issue("alice", "USER", testNow)

	parts := strings.Split(raw, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	forged := strings.Replace(string(payload), "alice", "mallory", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	if _, err := codec.Parse(strings.Join(parts, ".")); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	raw, _ := codec.Issue("alice", "USER", testNow)

	// Flip the last signature character to a different base64url symbol.
	last := raw[len(raw)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := raw[:len(raw)-1] + string(replacement)

	if _, err := codec.Parse(tampered); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestCodec_WrongKey(t *testing.T) {
	raw, _ := NewCodec("secret", time.Hour).Issue("alice", "USER", testNow)

	if _, err := NewCodec("other-secret", time.Hour).Parse(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestCodec_WrongAlgorithm(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewCodec("secret", time.Hour).Parse(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d", "%%%.%%%.%%%"} {
		if _, err := codec.Parse(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", raw, err)
		}
	}
}

func TestCodec_ExpiredTokenStillParses(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	raw, _ := codec.Issue("alice", "USER", testNow.Add(-2*time.Hour))

	claims, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("expired token should parse, got %v", err)
	}
	if !codec.IsExpired(claims, testNow) {
		t.Fatalf("expected token to be expired")
	}
}

func TestCodec_ExpiryBoundary(t *testing.T) {
	ttl := time.Hour
	codec := NewCodec("secret", ttl)
	raw, _ := codec.Issue("alice", "USER", testNow)
	claims, err := codec.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if codec.IsExpired(claims, testNow.Add(ttl-time.Second)) {
		t.Fatalf("token expired one second before TTL")
	}
	if !codec.IsExpired(claims, testNow.Add(ttl)) {
		t.Fatalf("token not expired at exact expiry instant")
	}
	if !codec.IsExpired(claims, testNow.Add(ttl+time.Second)) {
		t.Fatalf("token not expired one second after TTL")
	}
}

func TestCodec_DefaultTTL(t *testing.T) {
	codec := NewCodec("secret", 0)
	if codec.TTL() != 24*time.Hour {
		t.Fatalf("expected 24h default TTL, got %v", codec.TTL())
	}
}
