package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
)

type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// GetCustomers fetches all customers, newest first.
func (r *CustomerRepo) GetCustomers(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM customers
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("error fetching customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning customer: %w", err)
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return customers, nil
}

// GetCustomerByID fetches one customer.
func (r *CustomerRepo) GetCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(address, ''), created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch customer failed: %w", err)
	}
	return &c, nil
}

// CreateCustomer inserts a customer. Email is optional but unique when set.
func (r *CustomerRepo) CreateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO customers(name, email, phone, address)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at
	`,
		c.Name, c.Email, c.Phone, c.Address,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert customer failed: %w", err)
	}
	return c, nil
}

// UpdateCustomer overwrites the editable fields.
func (r *CustomerRepo) UpdateCustomer(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	err := r.db.QueryRow(ctx, `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4
		WHERE id = $5
		RETURNING id, name, email, COALESCE(phone, ''), COALESCE(address, ''), created_at
	`,
		c.Name, c.Email, c.Phone, c.Address, c.ID,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update customer failed: %w", err)
	}
	return c, nil
}

// DeleteCustomer removes a customer record. Sales keep a nullable
// reference, so past sales survive as counter sales.
func (r *CustomerRepo) DeleteCustomer(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `UPDATE sales SET customer_id = NULL WHERE customer_id = $1`, id)
	if err != nil {
		return fmt.Errorf("detach customer sales failed: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCustomerNotFound
	}

	return tx.Commit(ctx)
}
