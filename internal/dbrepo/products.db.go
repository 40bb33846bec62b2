package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
)

type ProductRepo struct {
	db *pgxpool.Pool
}

func NewProductRepo(db *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, code, name, COALESCE(description, ''), price, stock, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description,
		&p.Price, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProducts fetches all active products ordered by name.
func (r *ProductRepo) GetProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE active = TRUE
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("error fetching products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}

// GetProductByID fetches one product, active or not.
func (r *ProductRepo) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product failed: %w", err)
	}
	return p, nil
}

// GetProductByCode fetches one product by its unique code.
func (r *ProductRepo) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE code = $1
	`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch product failed: %w", err)
	}
	return p, nil
}

// CreateProduct inserts a product and returns it with generated fields.
func (r *ProductRepo) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO products(code, name, description, price, stock, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at
	`,
		p.Code, p.Name, p.Description, p.Price, p.Stock, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert product failed: %w", err)
	}
	return p, nil
}

// UpdateProduct applies a partial field set. Price and text fields only;
// stock changes go through AddStock or the sale transaction.
func (r *ProductRepo) UpdateProduct(ctx context.Context, id int64, upd *models.ProductUpdate) (*models.Product, error) {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []interface{}{}
	argPos := 1

	if upd.Code != nil {
		sets = append(sets, fmt.Sprintf("code = $%d", argPos))
		args = append(args, *upd.Code)
		argPos++
	}
	if upd.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *upd.Name)
		argPos++
	}
	if upd.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *upd.Description)
		argPos++
	}
	if upd.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", argPos))
		args = append(args, *upd.Price)
		argPos++
	}
	if upd.Active != nil {
		sets = append(sets, fmt.Sprintf("active = $%d", argPos))
		args = append(args, *upd.Active)
		argPos++
	}

	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $%d
		RETURNING `+productColumns+`
	`, strings.Join(sets, ", "), argPos)
	args = append(args, id)

	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product failed: %w", err)
	}
	return p, nil
}

// DeactivateProduct soft-deletes a product. Products are never hard-deleted
// because sale items keep pointing at them.
func (r *ProductRepo) DeactivateProduct(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("deactivate product failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// AddStock increments a product's stock and logs the IN movement in the
// same transaction.
func (r *ProductRepo) AddStock(ctx context.Context, productID, quantity, userID int64) (*models.Product, error) {
	if quantity <= 0 {
		return nil, models.ErrInvalidQuantity
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	p, err := scanProduct(tx.QueryRow(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING `+productColumns+`
	`, quantity, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update stock for product %d: %w", productID, err)
	}

	err = CreateInventoryMovementTx(ctx, tx, &models.InventoryMovement{
		ProductID: productID,
		Quantity:  quantity,
		Type:      models.MOVEMENT_IN,
		Reason:    "Ajuste manual de stock",
		UserID:    userID,
	})
	if err != nil {
		return nil, fmt.Errorf("insert stock movement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return p, nil
}
