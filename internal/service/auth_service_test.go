package service

import (
	"context"
	"errors"
	"testing"

	"github.com/supriety/kindness-track/internal/auth"
)

type authFixture struct {
	svc   AuthService
	users *fakeUserRepo
	stats *fakeStatsRepo
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	stats := newFakeStatsRepo()
	tokens := auth.NewTokenIssuer("test-access-secret", "test-refresh-secret")
	return &authFixture{
		svc:   NewAuthService(users, stats, tokens),
		users: users,
		stats: stats,
	}
}

func TestSignup(t *testing.T) {
	f := newAuthFixture()

	user, pair, err := f.svc.Signup(context.Background(), " Kat@Example.com ", "kind_kat", "password123", "Kat K")
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "kat@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "password123" || user.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("token pair not issued")
	}
	if _, ok := f.stats.stats[user.ID]; !ok {
		t.Fatal("stats row not created on signup")
	}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		username string
		password string
	}{
		{"missing email", "", "kind_kat", "password123"},
		{"email without at sign", "kat.example.com", "kind_kat", "password123"},
		{"short username", "kat@example.com", "ka", "password123"},
		{"short password", "kat@example.com", "kind_kat", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			if _, _, err := f.svc.Signup(context.Background(), tt.email, tt.username, tt.password, ""); err == nil {
				t.Fatal("expected a validation error")
			}
			if len(f.users.users) != 0 {
				t.Fatal("invalid user was persisted")
			}
		})
	}
}

func TestSignupDuplicateIdentity(t *testing.T) {
	f := newAuthFixture()
	if _, _, err := f.svc.Signup(context.Background(), "kat@example.com", "kind_kat", "password123", ""); err != nil {
		t.Fatal(err)
	}

	// Same email, different username.
	if _, _, err := f.svc.Signup(context.Background(), "kat@example.com", "other_kat", "password123", ""); !errors.Is(err, ErrIdentityTaken) {
		t.Fatalf("want ErrIdentityTaken, got %v", err)
	}
	// Same username, different email.
	if _, _, err := f.svc.Signup(context.Background(), "other@example.com", "kind_kat", "password123", ""); !errors.Is(err, ErrIdentityTaken) {
		t.Fatalf("want ErrIdentityTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	if _, _, err := f.svc.Signup(context.Background(), "kat@example.com", "kind_kat", "password123", ""); err != nil {
		t.Fatal(err)
	}

	// Either email or username works as the identifier.
	for _, identifier := range []string{"kat@example.com", "kind_kat"} {
		user, pair, err := f.svc.Login(context.Background(), identifier, "password123")
		if err != nil {
			t.Fatalf("login with %q: %v", identifier, err)
		}
		if user.Username != "kind_kat" || pair.AccessToken == "" {
			t.Fatalf("login with %q returned %+v", identifier, user)
		}
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture()
	if _, _, err := f.svc.Signup(context.Background(), "kat@example.com", "kind_kat", "password123", ""); err != nil {
		t.Fatal(err)
	}

	// Unknown identifier and wrong password return the same error so
	// accounts cannot be enumerated.
	_, _, unknownErr := f.svc.Login(context.Background(), "nobody@example.com", "password123")
	_, _, wrongPassErr := f.svc.Login(context.Background(), "kat@example.com", "wrong-password")
	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongPassErr, ErrInvalidCredentials) {
		t.Fatalf("unknown=%v wrongPassword=%v", unknownErr, wrongPassErr)
	}
}

func TestRefresh(t *testing.T) {
	f := newAuthFixture()
	user, pair, err := f.svc.Signup(context.Background(), "kat@example.com", "kind_kat", "password123", "")
	if err != nil {
		t.Fatal(err)
	}

	refreshed, newPair, err := f.svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.ID != user.ID {
		t.Fatalf("refreshed a different user: %s", refreshed.ID)
	}
	if newPair.AccessToken == "" || newPair.RefreshToken == "" {
		t.Fatal("refresh did not issue a full pair")
	}

	// An access token is not a refresh token.
	if _, _, err := f.svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}

	// A refresh token for a deleted user is dead.
	if err := f.users.Delete(context.Background(), user.ID); err != nil {
		t.Fatal(err)
	}
	if _, _, err := f.svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials after delete, got %v", err)
	}
}
