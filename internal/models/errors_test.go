package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Pan Francés", Available: 3, Requested: 5}
	want := "insufficient stock for Pan Francés: 3 available, 5 requested"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsBusinessError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"insufficient stock", &InsufficientStockError{ProductName: "Pan"}, true},
		{"wrapped insufficient stock", fmt.Errorf("create sale: %w", &InsufficientStockError{}), true},
		{"empty items", ErrEmptyItems, true},
		{"wrapped product not found", fmt.Errorf("%w: 42", ErrProductNotFound), true},
		{"inactive product", ErrProductInactive, true},
		{"storage fault", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBusinessError(tt.err); got != tt.want {
				t.Fatalf("IsBusinessError(%v) = %t, want %t", tt.err, got, tt.want)
			}
		})
	}
}
