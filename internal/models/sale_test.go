package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSaleRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SaleRequest
		wantErr error
	}{
		{
			name:    "no items",
			req:     SaleRequest{},
			wantErr: ErrEmptyItems,
		},
		{
			name: "invalid product reference",
			req: SaleRequest{Items: []SaleItemRequest{
				{ProductID: 0, Quantity: 1, UnitPrice: dec("0.30")},
			}},
			wantErr: ErrInvalidProductRef,
		},
		{
			name: "zero quantity",
			req: SaleRequest{Items: []SaleItemRequest{
				{ProductID: 1, Quantity: 0, UnitPrice: dec("0.30")},
			}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			req: SaleRequest{Items: []SaleItemRequest{
				{ProductID: 1, Quantity: -2, UnitPrice: dec("0.30")},
			}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "negative unit price",
			req: SaleRequest{Items: []SaleItemRequest{
				{ProductID: 1, Quantity: 1, UnitPrice: dec("-0.30")},
			}},
			wantErr: ErrInvalidUnitPrice,
		},
		{
			name: "second item invalid",
			req: SaleRequest{Items: []SaleItemRequest{
				{ProductID: 1, Quantity: 1, UnitPrice: dec("0.30")},
				{ProductID: 2, Quantity: 0, UnitPrice: dec("0.40")},
			}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "valid",
			req: SaleRequest{Items: []SaleItemRequest{
				{ProductID: 1, Quantity: 2, UnitPrice: dec("0.30")},
			}},
			wantErr: nil,
		},
		{
			name: "free item is valid",
			req: SaleRequest{Items: []SaleItemRequest{
				{ProductID: 1, Quantity: 1, UnitPrice: decimal.Zero},
			}},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaleRequestTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []SaleItemRequest
		want  string
	}{
		{
			name: "cents stay exact",
			items: []SaleItemRequest{
				{ProductID: 1, Quantity: 2, UnitPrice: dec("0.30")},
			},
			want: "0.6",
		},
		{
			name: "mixed items",
			items: []SaleItemRequest{
				{ProductID: 1, Quantity: 3, UnitPrice: dec("0.30")},
				{ProductID: 2, Quantity: 2, UnitPrice: dec("0.40")},
				{ProductID: 3, Quantity: 1, UnitPrice: dec("15.00")},
			},
			want: "16.7",
		},
		{
			name: "sub-cent price rounds at subtotal",
			items: []SaleItemRequest{
				{ProductID: 1, Quantity: 3, UnitPrice: dec("0.333")},
			},
			want: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := SaleRequest{Items: tt.items}
			if got := req.Total(); !got.Equal(dec(tt.want)) {
				t.Fatalf("Total() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSaleItemRequestSubtotal(t *testing.T) {
	it := SaleItemRequest{ProductID: 1, Quantity: 7, UnitPrice: dec("0.30")}
	if got := it.Subtotal(); !got.Equal(dec("2.10")) {
		t.Fatalf("Subtotal() = %s, want 2.10", got)
	}
}

func TestEffectivePaymentMethod(t *testing.T) {
	tests := []struct {
		name string
		req  SaleRequest
		want string
	}{
		{"explicit card", SaleRequest{PaymentMethod: PAYMENT_CARD}, PAYMENT_CARD},
		{"explicit wallet", SaleRequest{PaymentMethod: PAYMENT_WALLET}, PAYMENT_WALLET},
		{"empty falls back to cash", SaleRequest{}, PAYMENT_CASH},
		{"credit overrides card", SaleRequest{PaymentMethod: PAYMENT_CARD, IsCredit: true}, PAYMENT_CASH},
		{"credit with empty method", SaleRequest{IsCredit: true}, PAYMENT_CASH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.EffectivePaymentMethod(); got != tt.want {
				t.Fatalf("EffectivePaymentMethod() = %s, want %s", got, tt.want)
			}
		})
	}
}
