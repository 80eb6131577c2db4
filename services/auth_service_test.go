package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ManrajSaini/Railway-Management/config"
	"github.com/ManrajSaini/Railway-Management/models"
)

func newTokenService(ttl time.Duration) *AuthService {
	return NewAuthService(nil, &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiresIn: ttl,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	auth := newTokenService(time.Hour)
	user := &models.User{ID: 42, Email: "rider@example.com", Role: models.RoleUser}

	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := auth.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("claims.UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "rider@example.com" {
		t.Errorf("claims.Email = %q, want rider@example.com", claims.Email)
	}
	if claims.Role != models.RoleUser {
		t.Errorf("claims.Role = %q, want %q", claims.Role, models.RoleUser)
	}
}

func TestParseTokenExpired(t *testing.T) {
	auth := newTokenService(-time.Minute)

	token, err := auth.GenerateToken(&models.User{ID: 1, Email: "a@example.com", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := auth.ParseToken(token); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("ParseToken() of expired token error = %v, want ErrInvalidCredentials", err)
	}
}

func TestParseTokenGarbage(t *testing.T) {
	auth := newTokenService(time.Hour)

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := auth.ParseToken(token); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("ParseToken(%q) error = %v, want ErrInvalidCredentials", token, err)
		}
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := newTokenService(time.Hour)
	verifier := NewAuthService(nil, &config.Config{JWTSecret: "other-secret", JWTExpiresIn: time.Hour})

	token, err := issuer.GenerateToken(&models.User{ID: 1, Email: "a@example.com", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := verifier.ParseToken(token); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("ParseToken() with wrong secret error = %v, want ErrInvalidCredentials", err)
	}
}
