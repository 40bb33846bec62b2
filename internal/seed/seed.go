// Package seed loads the initial dataset for a fresh installation: the
// admin and seller accounts plus the base bread catalog. Every insert is
// idempotent, so running it against an existing database changes nothing.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
	"github.com/shopspring/decimal"
)

type seedUser struct {
	name     string
	email    string
	password string
	phone    string
	role     string
}

type seedProduct struct {
	code        string
	name        string
	description string
	price       string
	stock       int64
}

var users = []seedUser{
	{"Administrador", "admin@panaderia.com", "admin123", "999000001", models.ROLE_ADMIN},
	{"Vendedor Principal", "vendedor@panaderia.com", "vendedor123", "999000002", models.ROLE_SELLER},
	{"Maestro Panadero", "produccion@panaderia.com", "produccion123", "999000003", models.ROLE_PRODUCTION},
}

var products = []seedProduct{
	{"PAN001", "Pan Francés", "Pan francés clásico", "0.30", 100},
	{"PAN002", "Pan Integral", "Pan integral de trigo", "0.40", 80},
	{"PAN003", "Torta de Chocolate", "Torta de chocolate entera", "15.00", 10},
	{"PAN004", "Empanada de Pollo", "Empanada horneada de pollo", "2.50", 40},
	{"PAN005", "Croissant", "Croissant de mantequilla", "1.80", 30},
}

var customers = []models.Customer{
	{Name: "Bodega Doña María", Phone: "987654321", Address: "Av. Principal 123"},
	{Name: "Restaurante El Buen Sabor", Phone: "912345678", Address: "Jr. Comercio 456"},
}

// Run inserts the seed users, products and customers.
func Run(ctx context.Context, db *pgxpool.Pool) error {
	for _, u := range users {
		hashed, err := utils.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		_, err = db.Exec(ctx, `
			INSERT INTO users(name, email, password, phone, role)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (email) DO NOTHING
		`, u.name, u.email, hashed, u.phone, u.role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return fmt.Errorf("seed price for %s: %w", p.code, err)
		}
		_, err = db.Exec(ctx, `
			INSERT INTO products(code, name, description, price, stock, active)
			VALUES ($1,$2,$3,$4,$5,TRUE)
			ON CONFLICT (code) DO NOTHING
		`, p.code, p.name, p.description, price, p.stock)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.code, err)
		}
	}

	for _, c := range customers {
		var exists bool
		err := db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM customers WHERE name=$1)`, c.Name,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("seed customer lookup %s: %w", c.Name, err)
		}
		if exists {
			continue
		}
		_, err = db.Exec(ctx, `
			INSERT INTO customers(name, phone, address)
			VALUES ($1,$2,$3)
		`, c.Name, c.Phone, c.Address)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.Name, err)
		}
	}

	return nil
}
