package auth

import (
	"context"
	"testing"
	"time"

	"serotonyl.ru/oasis-backend/internal/common"
	"serotonyl.ru/oasis-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:   "0123456789abcdef0123456789abcdef",
		JWTIssuer:   "oasis-backend",
		JWTAudience: "oasis-clients",
		JWTTTL:      time.Hour,
	}
}

func TestTokenRoundtrip(t *testing.T) {
	tm := NewTokenManager(testConfig())

	token, err := tm.Issue(42, "neo", "gamer")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "neo" || claims.Role != "gamer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Subject != "42" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager(testConfig())
	token, err := tm.Issue(1, "neo", "gamer")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	other := testConfig()
	other.JWTSecret = "ffffffffffffffffffffffffffffffff"
	if _, err := NewTokenManager(other).Parse(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.JWTTTL = -time.Minute
	tm := NewTokenManager(cfg)

	token, err := tm.Issue(1, "neo", "gamer")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := tm.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestClaimsContextHelpers(t *testing.T) {
	ctx := context.Background()
	if _, ok := common.UserID(ctx); ok {
		t.Fatal("expected no user id in empty context")
	}

	ctx = common.WithClaims(ctx, &Claims{UserID: 7, Username: "neo", Role: "admin"})
	id, ok := common.UserID(ctx)
	if !ok || id != 7 {
		t.Fatalf("expected user id 7, got %d (ok=%v)", id, ok)
	}
	claims, ok := common.FromContext(ctx)
	if !ok || claims.Role != "admin" {
		t.Fatalf("unexpected claims from context: %+v", claims)
	}
}
