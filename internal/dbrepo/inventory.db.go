package dbrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
)

type InventoryRepo struct {
	db *pgxpool.Pool
}

func NewInventoryRepo(db *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// CreateInventoryMovementTx appends a movement within an existing tx.
// The movement log is append-only; there is no update or delete path.
func CreateInventoryMovementTx(ctx context.Context, tx pgx.Tx, m *models.InventoryMovement) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory_movements(product_id, quantity, type, reason, sale_id, user_id)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		m.ProductID,
		m.Quantity,
		m.Type,
		m.Reason,
		m.SaleID,
		m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory movement in tx: %w", err)
	}
	return nil
}

// ListMovements returns the movement log newest-first with product and
// actor names joined in.
func (r *InventoryRepo) ListMovements(ctx context.Context, limit int) ([]*models.InventoryMovement, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			im.id, im.product_id,
			COALESCE(p.name, 'Producto eliminado') AS product_name,
			im.quantity, im.type, COALESCE(im.reason, ''), im.sale_id,
			im.user_id, u.name AS user_name, im.created_at
		FROM inventory_movements im
		LEFT JOIN products p ON p.id = im.product_id
		JOIN users u ON u.id = im.user_id
		ORDER BY im.created_at DESC, im.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query inventory movements failed: %w", err)
	}
	defer rows.Close()

	movements := make([]*models.InventoryMovement, 0)
	for rows.Next() {
		var m models.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.ProductName,
			&m.Quantity, &m.Type, &m.Reason, &m.SaleID,
			&m.UserID, &m.UserName, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return movements, nil
}
