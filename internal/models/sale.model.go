package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the persisted sale header with its nested detail for the read side.
type Sale struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	UserID        int64           `json:"user_id"`
	CustomerID    *int64          `json:"customer_id,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	IsCredit      bool            `json:"is_credit"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`

	Items    []SaleItem `json:"items,omitempty"`
	Customer *Customer  `json:"customer,omitempty"`
	Seller   User       `json:"seller"`
}

type SaleItem struct {
	ID          int64           `json:"id"`
	SaleID      int64           `json:"sale_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleRequest is the payload accepted by POST /api/sales.
type SaleRequest struct {
	CustomerID    *int64            `json:"customer_id,omitempty"`
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	IsCredit      bool              `json:"is_credit"`
}

type SaleItemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Validate checks the request preconditions before any mutation is attempted.
func (r *SaleRequest) Validate() error {
	if len(r.Items) == 0 {
		return ErrEmptyItems
	}
	for _, it := range r.Items {
		if it.ProductID <= 0 {
			return fmt.Errorf("%w: product id %d", ErrInvalidProductRef, it.ProductID)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: product %d", ErrInvalidQuantity, it.ProductID)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: product %d", ErrInvalidUnitPrice, it.ProductID)
		}
	}
	return nil
}

// Total sums quantity x unit price over the items, rounded to 2 decimal places.
func (r *SaleRequest) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Subtotal())
	}
	return total.Round(2)
}

// Subtotal is quantity x unit price at 2 decimal places.
func (i SaleItemRequest) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity)).Round(2)
}

// EffectivePaymentMethod resolves the payment method stored on the sale.
// A credit sale has not been paid yet, so the client-provided method is
// discarded and the default cash representation is recorded; an empty
// method also falls back to cash.
func (r *SaleRequest) EffectivePaymentMethod() string {
	if r.IsCredit || r.PaymentMethod == "" {
		return PAYMENT_CASH
	}
	return r.PaymentMethod
}
