package models

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyItems        = errors.New("sale must contain at least one item")
	ErrInvalidProductRef = errors.New("invalid product reference")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidUnitPrice  = errors.New("unit price cannot be negative")
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product is not active")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrSaleNotFound      = errors.New("sale not found")
)

// InsufficientStockError names the product whose stock could not cover the
// requested quantity.
type InsufficientStockError struct {
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}

// IsBusinessError reports whether err is a validation or business-rule
// failure the caller should see as a 400/404, as opposed to a storage fault.
func IsBusinessError(err error) bool {
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return true
	}
	for _, known := range []error{
		ErrEmptyItems, ErrInvalidProductRef, ErrInvalidQuantity,
		ErrInvalidUnitPrice, ErrProductNotFound, ErrProductInactive,
		ErrCustomerNotFound, ErrUserNotFound, ErrSaleNotFound,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
