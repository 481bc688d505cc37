package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("unexpected port: %q", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token TTL, got %v", cfg.TokenTTL)
	}
	if cfg.BcryptCost != 10 || cfg.HashWorkers != 4 {
		t.Fatalf("unexpected hashing defaults: cost=%d workers=%d", cfg.BcryptCost, cfg.HashWorkers)
	}

	want := []string{"/auth/", "/health", "/metrics"}
	if len(cfg.PublicRoutePrefixes) != len(want) {
		t.Fatalf("unexpected public prefixes: %v", cfg.PublicRoutePrefixes)
	}
	for i, p := range want {
		if cfg.PublicRoutePrefixes[i] != p {
			t.Fatalf("expected prefix %q at %d, got %q", p, i, cfg.PublicRoutePrefixes[i])
		}
	}
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m TTL, got %v", cfg.TokenTTL)
	}
	if cfg.LoginMaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", cfg.LoginMaxAttempts)
	}
}
