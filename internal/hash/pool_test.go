package hash

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func newTestPool(t *testing.T) *BcryptPool {
	t.Helper()
	p := NewBcryptPool(2, bcrypt.MinCost, zerolog.Nop())
	t.Cleanup(p.Close)
	return p
}

func TestBcryptPool_HashAndVerify(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()

	digest, err := p.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "secret1" || digest == "" {
		t.Fatalf("digest must not echo the plaintext: %q", digest)
	}

	if !p.Verify(ctx, "secret1", digest) {
		t.Fatalf("verify should accept the original plaintext")
	}
	if p.Verify(ctx, "secret2", digest) {
		t.Fatalf("verify should reject a different plaintext")
	}
}

func TestBcryptPool_HashesAreSalted(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()

	first, err := p.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := p.Hash(ctx, "secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same plaintext must differ")
	}
}

func TestBcryptPool_MalformedDigest(t *testing.T) {
	p := newTestPool(t)

	if p.Verify(context.Background(), "secret1", "not-a-bcrypt-digest") {
		t.Fatalf("malformed digest must verify false")
	}
}

func TestBcryptPool_CancelledContext(t *testing.T) {
	p := newTestPool(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Hash(ctx, "secret1"); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
	if p.Verify(ctx, "secret1", "whatever") {
		t.Fatalf("cancelled verify must report false")
	}
}

func TestBcryptPool_CostFallback(t *testing.T) {
	p := NewBcryptPool(1, 99, zerolog.Nop())
	defer p.Close()

	digest, err := p.Hash(context.Background(), "pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", cost)
	}
}
