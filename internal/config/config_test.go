package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hustlefolio_test")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.JWTIssuer != "hustlefolio" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "hustlefolio")
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hustlefolio_test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRY", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9000")
	}
	if cfg.JWTExpiry != time.Hour {
		t.Errorf("JWTExpiry = %v, want 1h", cfg.JWTExpiry)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}
