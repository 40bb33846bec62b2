package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	APPName    = "Panaderia POS"
	APPVersion = "1.0"
)

const (
	ROLE_ADMIN      = "ADMIN"
	ROLE_SELLER     = "VENDEDOR"
	ROLE_PRODUCTION = "PRODUCCION"
)

const (
	PAYMENT_CASH   = "CASH"
	PAYMENT_CARD   = "CARD"
	PAYMENT_WALLET = "DIGITAL_WALLET"
)

const (
	SALE_PENDING   = "PENDING"
	SALE_COMPLETED = "COMPLETED"
)

const (
	MOVEMENT_IN  = "IN"
	MOVEMENT_OUT = "OUT"
)

const (
	FIN_INCOME  = "INCOME"
	FIN_EXPENSE = "EXPENSE"
)

const SALE_CODE_PREFIX = "V"

// Response is the type for response
type Response struct {
	Error   bool   `json:"error"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JWT holds the verified actor identity attached to each request
type JWT struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Issuer    string `json:"iss"`
	Audience  string `json:"aud"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Algorithm string
	Expiry    time.Duration
}

// User model
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // hashed, never serialized
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"` // ADMIN, VENDEDOR, PRODUCCION
	CreatedAt time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case ROLE_ADMIN, ROLE_SELLER, ROLE_PRODUCTION:
		return true
	}
	return false
}

type Product struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductUpdate carries the partial field set for a product update.
// Nil pointers mean "leave unchanged".
type ProductUpdate struct {
	Code        *string          `json:"code,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type InventoryMovement struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int64     `json:"quantity"`
	Type        string    `json:"type"` // IN, OUT
	Reason      string    `json:"reason"`
	SaleID      *int64    `json:"sale_id,omitempty"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type FinancialMovement struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"` // INCOME, EXPENSE
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	UserID      int64           `json:"user_id"`
	UserName    string          `json:"user_name,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AuditLog struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Reports

type DailySaleTotal struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type TopProduct struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity_sold"`
	Total    decimal.Decimal `json:"total"`
}

type FinanceTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type SummaryReport struct {
	Date        time.Time        `json:"date"`
	SalesByDay  []DailySaleTotal `json:"sales_by_day"`
	TopProducts []TopProduct     `json:"top_products"`
	Finance     FinanceTotals    `json:"finance"`
}

// CashboxLine is one flattened sale item row in the daily cashbox summary.
type CashboxLine struct {
	Customer      string          `json:"customer"`
	Product       string          `json:"product"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	IsCredit      bool            `json:"is_credit"`
}

type CashboxExpense struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type CashboxSummary struct {
	Date     time.Time        `json:"date"`
	Totals   FinanceTotals    `json:"totals"`
	Sales    []CashboxLine    `json:"sales"`
	Expenses []CashboxExpense `json:"expenses"`
}
