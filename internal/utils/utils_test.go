package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/panaderiadelsol/pos-api/internal/models"
)

func TestSaleCode(t *testing.T) {
	tests := []struct {
		saleID int64
		want   string
	}{
		{1, "V-000001"},
		{42, "V-000042"},
		{999999, "V-999999"},
		{1234567, "V-1234567"},
	}

	for _, tt := range tests {
		if got := SaleCode(tt.saleID); got != tt.want {
			t.Fatalf("SaleCode(%d) = %q, want %q", tt.saleID, got, tt.want)
		}
	}
}

func TestSaleCodeDistinctPerID(t *testing.T) {
	seen := make(map[string]bool)
	for id := int64(1); id <= 2000; id++ {
		code := SaleCode(id)
		if seen[code] {
			t.Fatalf("SaleCode produced duplicate %q", code)
		}
		seen[code] = true
	}
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid object", `{"name":"Pan Francés"}`, false},
		{"two json values", `{"name":"a"}{"name":"b"}`, true},
		{"trailing garbage", `{"name":"a"} x`, true},
		{"malformed", `{"name":`, true},
		{"empty body", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var data struct {
				Name string `json:"name"`
			}
			err := ReadJSON(w, r, &data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadJSON() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	payload := models.Response{Error: false, Status: "success", Message: "ok"}

	if err := WriteJSON(w, 201, payload); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if w.Code != 201 {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}

	var got models.Response
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if got.Status != "success" || got.Message != "ok" {
		t.Fatalf("round-trip = %+v", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"matching constraint", unique, "users_email_key", true},
		{"any constraint", unique, "", true},
		{"different constraint", unique, "products_code_key", false},
		{"other pg error", &pgconn.PgError{Code: "23503"}, "users_email_key", false},
		{"plain error", errors.New("boom"), "users_email_key", false},
		{"nil", nil, "users_email_key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
				t.Fatalf("IsUniqueViolation() = %t, want %t", got, tt.want)
			}
		})
	}
}
