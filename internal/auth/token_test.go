package auth

import (
	"testing"

	"github.com/supriety/kindness-track/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:       "5f2a7c1e-0000-0000-0000-000000000001",
		Email:    "kat@example.com",
		Username: "kind_kat",
		Role:     model.RoleUser,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret")

	token, err := issuer.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := issuer.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != testUser().ID {
		t.Fatalf("UserID=%s", claims.UserID)
	}
	if claims.Username != "kind_kat" || claims.Role != model.RoleUser {
		t.Fatalf("claims not carried: %+v", claims)
	}
}

func TestTokenSecretsAreSeparate(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret")

	access, err := issuer.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.VerifyRefreshToken(access); err == nil {
		t.Fatal("access token verified as refresh token")
	}

	refresh, err := issuer.GenerateRefreshToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.VerifyAccessToken(refresh); err == nil {
		t.Fatal("refresh token verified as access token")
	}
	if _, err := issuer.VerifyRefreshToken(refresh); err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret")
	other := NewTokenIssuer("different", "different")

	token, err := issuer.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.VerifyAccessToken(token); err != ErrInvalidToken {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer("access-secret", "refresh-secret")
	for _, token := range []string{"", "not.a.jwt", "a.b.c"} {
		if _, err := issuer.VerifyAccessToken(token); err != ErrInvalidToken {
			t.Fatalf("token %q: want ErrInvalidToken, got %v", token, err)
		}
	}
}
