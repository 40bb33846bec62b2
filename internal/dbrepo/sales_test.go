package dbrepo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/shopspring/decimal"
)

func fetchFrom(products map[int64]lockedProduct, calls map[int64]int) func(int64) (lockedProduct, error) {
	return func(productID int64) (lockedProduct, error) {
		if calls != nil {
			calls[productID]++
		}
		p, ok := products[productID]
		if !ok {
			return lockedProduct{}, fmt.Errorf("%w: %d", models.ErrProductNotFound, productID)
		}
		return p, nil
	}
}

func item(productID, quantity int64) models.SaleItemRequest {
	return models.SaleItemRequest{ProductID: productID, Quantity: quantity, UnitPrice: decimal.NewFromInt(1)}
}

func TestReserveStock(t *testing.T) {
	catalog := map[int64]lockedProduct{
		1: {Name: "Pan Francés", Stock: 10, Active: true},
		2: {Name: "Pan Integral", Stock: 1, Active: true},
		3: {Name: "Torta de Chocolate", Stock: 5, Active: false},
	}

	tests := []struct {
		name    string
		items   []models.SaleItemRequest
		wantErr error
	}{
		{
			name:    "single item within stock",
			items:   []models.SaleItemRequest{item(1, 10)},
			wantErr: nil,
		},
		{
			name:    "single item over stock",
			items:   []models.SaleItemRequest{item(1, 11)},
			wantErr: &models.InsufficientStockError{ProductName: "Pan Francés", Available: 10, Requested: 11},
		},
		{
			name:    "combined demand over stock",
			items:   []models.SaleItemRequest{item(1, 5), item(1, 6)},
			wantErr: &models.InsufficientStockError{ProductName: "Pan Francés", Available: 5, Requested: 6},
		},
		{
			name:    "combined demand exactly stock",
			items:   []models.SaleItemRequest{item(1, 5), item(1, 5)},
			wantErr: nil,
		},
		{
			name:    "unknown product",
			items:   []models.SaleItemRequest{item(99, 1)},
			wantErr: models.ErrProductNotFound,
		},
		{
			name:    "inactive product",
			items:   []models.SaleItemRequest{item(3, 1)},
			wantErr: models.ErrProductInactive,
		},
		{
			name:    "first violation wins in item order",
			items:   []models.SaleItemRequest{item(2, 2), item(99, 1)},
			wantErr: &models.InsufficientStockError{ProductName: "Pan Integral", Available: 1, Requested: 2},
		},
		{
			name:    "unknown product before stock violation",
			items:   []models.SaleItemRequest{item(99, 1), item(2, 2)},
			wantErr: models.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reserveStock(tt.items, fetchFrom(catalog, nil))

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("reserveStock() = %v, want nil", err)
				}
				return
			}

			var wantStock *models.InsufficientStockError
			if errors.As(tt.wantErr, &wantStock) {
				var got *models.InsufficientStockError
				if !errors.As(err, &got) {
					t.Fatalf("reserveStock() = %v, want InsufficientStockError", err)
				}
				if got.ProductName != wantStock.ProductName ||
					got.Available != wantStock.Available ||
					got.Requested != wantStock.Requested {
					t.Fatalf("reserveStock() = %+v, want %+v", got, wantStock)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("reserveStock() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReserveStockFetchesEachProductOnce(t *testing.T) {
	catalog := map[int64]lockedProduct{
		1: {Name: "Pan Francés", Stock: 10, Active: true},
		2: {Name: "Pan Integral", Stock: 10, Active: true},
	}
	calls := make(map[int64]int)

	items := []models.SaleItemRequest{item(1, 2), item(2, 3), item(1, 4)}
	if err := reserveStock(items, fetchFrom(catalog, calls)); err != nil {
		t.Fatalf("reserveStock() = %v, want nil", err)
	}
	for id, n := range calls {
		if n != 1 {
			t.Fatalf("product %d fetched %d times, want 1", id, n)
		}
	}
}
