package api

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/panaderiadelsol/pos-api/internal/config"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

func testApp() *application {
	return &application{
		config: config.Config{
			JWT: models.JWTConfig{
				SecretKey: "test_secret",
				Issuer:    "test",
				Audience:  "test",
				Algorithm: "HS256",
				Expiry:    time.Hour,
			},
		},
		infoLog:  log.New(io.Discard, "", 0),
		errorLog: log.New(io.Discard, "", 0),
	}
}

func testToken(t *testing.T, app *application, role string) string {
	t.Helper()
	token, err := utils.GenerateJWT(models.JWT{
		ID:    1,
		Name:  "Test",
		Email: "test@panaderia.com",
		Role:  role,
	}, app.config.JWT)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	return token
}

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []string
		want    bool
	}{
		{"admin in admin-only", models.ROLE_ADMIN, []string{models.ROLE_ADMIN}, true},
		{"seller in admin-only", models.ROLE_SELLER, []string{models.ROLE_ADMIN}, false},
		{"seller in sales set", models.ROLE_SELLER, []string{models.ROLE_ADMIN, models.ROLE_SELLER}, true},
		{"production in sales set", models.ROLE_PRODUCTION, []string{models.ROLE_ADMIN, models.ROLE_SELLER}, false},
		{"empty set", models.ROLE_ADMIN, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoleAllowed(tt.role, tt.allowed); got != tt.want {
				t.Fatalf("RoleAllowed(%s, %v) = %t, want %t", tt.role, tt.allowed, got, tt.want)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app := testApp()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := utils.GetUser(r)
		if user == nil {
			t.Error("no user attached to the request context")
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := app.RequireAuth(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + testToken(t, app, models.ROLE_SELLER), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/sales", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	app := testApp()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		role       string
		allowed    []string
		wantStatus int
	}{
		{"admin allowed", models.ROLE_ADMIN, []string{models.ROLE_ADMIN}, http.StatusOK},
		{"seller allowed in sales", models.ROLE_SELLER, []string{models.ROLE_ADMIN, models.ROLE_SELLER}, http.StatusOK},
		{"production forbidden in sales", models.ROLE_PRODUCTION, []string{models.ROLE_ADMIN, models.ROLE_SELLER}, http.StatusForbidden},
		{"seller forbidden in admin-only", models.ROLE_SELLER, []string{models.ROLE_ADMIN}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := app.RequireAuth(app.RequireRole(tt.allowed...)(next))

			r := httptest.NewRequest("POST", "/api/sales", nil)
			r.Header.Set("Authorization", "Bearer "+testToken(t, app, tt.role))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	app := testApp()
	handler := app.RequireRole(models.ROLE_ADMIN)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
