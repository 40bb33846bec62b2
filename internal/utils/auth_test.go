package utils

import (
	"testing"
	"time"

	"github.com/panaderiadelsol/pos-api/internal/models"
)

func testJWTConfig() models.JWTConfig {
	return models.JWTConfig{
		SecretKey: "test_secret",
		Issuer:    "test",
		Audience:  "test",
		Algorithm: "HS256",
		Expiry:    time.Hour,
	}
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hashed == "admin123" {
		t.Fatal("hash equals the plain password")
	}
	if !CheckPassword("admin123", hashed) {
		t.Fatal("CheckPassword() rejected the correct password")
	}
	if CheckPassword("wrong", hashed) {
		t.Fatal("CheckPassword() accepted a wrong password")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	user := models.JWT{ID: 7, Name: "Vendedor", Email: "vendedor@panaderia.com", Role: models.ROLE_SELLER}

	token, err := GenerateJWT(user, cfg)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	parsed, err := ParseJWT(token, cfg)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if parsed.ID != user.ID || parsed.Email != user.Email || parsed.Role != user.Role {
		t.Fatalf("ParseJWT() = %+v, want identity of %+v", parsed, user)
	}
}

func TestParseJWTRejectsBadTokens(t *testing.T) {
	cfg := testJWTConfig()
	token, err := GenerateJWT(models.JWT{ID: 1, Role: models.ROLE_ADMIN}, cfg)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
		cfg   models.JWTConfig
	}{
		{"garbage", "not.a.token", cfg},
		{"tampered payload", token + "x", cfg},
		{"wrong secret", token, models.JWTConfig{SecretKey: "other", Algorithm: "HS256"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJWT(tt.token, tt.cfg); err == nil {
				t.Fatal("ParseJWT() accepted an invalid token")
			}
		})
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Expiry = -time.Minute

	token, err := GenerateJWT(models.JWT{ID: 1, Role: models.ROLE_ADMIN}, cfg)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	if _, err := ParseJWT(token, cfg); err == nil {
		t.Fatal("ParseJWT() accepted an expired token")
	}
}
