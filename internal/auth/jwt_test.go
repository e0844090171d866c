package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "hustlefolio-test", time.Hour)

	token, err := svc.GenerateToken("alice", "USER")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if claims.Role != "USER" {
		t.Errorf("Role = %q, want %q", claims.Role, "USER")
	}
	if claims.Subject != "alice" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "alice")
	}
	if claims.Issuer != "hustlefolio-test" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "hustlefolio-test")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService("secret-a", "hustlefolio-test", time.Hour)
	other := NewJWTService("secret-b", "hustlefolio-test", time.Hour)

	token, err := svc.GenerateToken("bob", "USER")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("test-secret", "hustlefolio-test", -time.Minute)

	token, err := svc.GenerateToken("carol", "USER")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if err != ErrExpiredToken {
		t.Errorf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "hustlefolio-test", time.Hour)

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
