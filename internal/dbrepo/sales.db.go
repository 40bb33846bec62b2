package dbrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

type SaleRepo struct {
	db *pgxpool.Pool
}

func NewSaleRepo(db *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{db: db}
}

// lockedProduct is the product state captured while its row is locked.
type lockedProduct struct {
	Name   string
	Stock  int64
	Active bool
}

// reserveStock walks the items in order, fetching each referenced product
// once through fetch and tracking the remaining stock per product, so a
// sale that references the same product twice is checked against the
// combined demand. The first violation in item order wins.
func reserveStock(items []models.SaleItemRequest, fetch func(productID int64) (lockedProduct, error)) error {
	names := make(map[int64]string)
	remaining := make(map[int64]int64)

	for _, it := range items {
		if _, seen := remaining[it.ProductID]; !seen {
			p, err := fetch(it.ProductID)
			if err != nil {
				return err
			}
			if !p.Active {
				return fmt.Errorf("%w: %s", models.ErrProductInactive, p.Name)
			}
			names[it.ProductID] = p.Name
			remaining[it.ProductID] = p.Stock
		}

		if remaining[it.ProductID] < it.Quantity {
			return &models.InsufficientStockError{
				ProductName: names[it.ProductID],
				Available:   remaining[it.ProductID],
				Requested:   it.Quantity,
			}
		}
		remaining[it.ProductID] -= it.Quantity
	}
	return nil
}

// CreateSale validates stock, computes the total, and persists the sale
// header, its items, the stock decrements, the OUT inventory movements and,
// for non-credit sales, the INCOME ledger entry, all in one transaction.
func (r *SaleRepo) CreateSale(ctx context.Context, userID int64, req *models.SaleRequest) (*models.Sale, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// --------------------
	// Step 1: Verify the customer reference, if any
	// --------------------
	if req.CustomerID != nil {
		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM customers WHERE id=$1)`,
			*req.CustomerID,
		).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("lookup customer failed: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %d", models.ErrCustomerNotFound, *req.CustomerID)
		}
	}

	// --------------------
	// Step 2: Lock product rows and check stock
	// --------------------
	// Each product row is locked FOR UPDATE before the check, so no
	// concurrent sale can consume the same units between check and
	// decrement.
	err = reserveStock(req.Items, func(productID int64) (lockedProduct, error) {
		var p lockedProduct
		err := tx.QueryRow(ctx,
			`SELECT name, stock, active FROM products WHERE id=$1 FOR UPDATE`,
			productID,
		).Scan(&p.Name, &p.Stock, &p.Active)
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("%w: %d", models.ErrProductNotFound, productID)
		}
		if err != nil {
			return p, fmt.Errorf("lock product %d failed: %w", productID, err)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------
	// Step 3: Insert sale header
	// --------------------
	// The id is allocated up front so the unique code can be derived
	// from it inside the same transaction.
	sale := &models.Sale{
		UserID:        userID,
		CustomerID:    req.CustomerID,
		Total:         req.Total(),
		PaymentMethod: req.EffectivePaymentMethod(),
		IsCredit:      req.IsCredit,
		Status:        models.SALE_COMPLETED,
	}

	err = tx.QueryRow(ctx,
		`SELECT nextval(pg_get_serial_sequence('sales', 'id'))`,
	).Scan(&sale.ID)
	if err != nil {
		return nil, fmt.Errorf("allocate sale id failed: %w", err)
	}
	sale.Code = utils.SaleCode(sale.ID)

	err = tx.QueryRow(ctx, `
		INSERT INTO sales(id, code, user_id, customer_id, total, payment_method, is_credit, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`,
		sale.ID,
		sale.Code,
		sale.UserID,
		sale.CustomerID,
		sale.Total,
		sale.PaymentMethod,
		sale.IsCredit,
		sale.Status,
	).Scan(&sale.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert sale failed: %w", err)
	}

	// --------------------
	// Step 4: Items, stock decrements, OUT movements
	// --------------------
	for _, it := range req.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO sale_items(sale_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1,$2,$3,$4,$5)
		`,
			sale.ID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal(),
		)
		if err != nil {
			return nil, fmt.Errorf("insert sale item failed: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = CURRENT_TIMESTAMP
			WHERE id = $2
		`, it.Quantity, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("update stock failed: %w", err)
		}

		err = CreateInventoryMovementTx(ctx, tx, &models.InventoryMovement{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Type:      models.MOVEMENT_OUT,
			Reason:    fmt.Sprintf("Sale %s", sale.Code),
			SaleID:    &sale.ID,
			UserID:    userID,
		})
		if err != nil {
			return nil, fmt.Errorf("insert inventory movement failed: %w", err)
		}
	}

	// --------------------
	// Step 5: Ledger entry (skipped for credit sales)
	// --------------------
	// A credit sale is a receivable; no cash has moved yet.
	if !req.IsCredit {
		err = CreateFinancialMovementTx(ctx, tx, &models.FinancialMovement{
			Type:        models.FIN_INCOME,
			Category:    "sale",
			Amount:      sale.Total,
			Description: fmt.Sprintf("Sale %s", sale.Code),
			UserID:      userID,
		})
		if err != nil {
			return nil, fmt.Errorf("insert financial movement failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return sale, nil
}

// GetSales returns all sales newest-first with nested items, customer and
// seller. A sale item whose product has been removed keeps a placeholder
// product name instead of failing the listing.
func (r *SaleRepo) GetSales(ctx context.Context) ([]*models.Sale, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			s.id, s.code, s.user_id, s.customer_id,
			s.total, s.payment_method, s.is_credit, s.status, s.created_at,
			u.name AS seller_name, u.email AS seller_email, u.role AS seller_role,
			c.name, c.email, c.phone, c.address
		FROM sales s
		JOIN users u ON u.id = s.user_id
		LEFT JOIN customers c ON c.id = s.customer_id
		ORDER BY s.created_at DESC, s.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sales failed: %w", err)
	}
	defer rows.Close()

	sales := make([]*models.Sale, 0)
	byID := make(map[int64]*models.Sale)
	saleIDs := make([]int64, 0)

	for rows.Next() {
		var s models.Sale
		var custName, custPhone, custAddress *string
		var custEmail *string

		err := rows.Scan(
			&s.ID, &s.Code, &s.UserID, &s.CustomerID,
			&s.Total, &s.PaymentMethod, &s.IsCredit, &s.Status, &s.CreatedAt,
			&s.Seller.Name, &s.Seller.Email, &s.Seller.Role,
			&custName, &custEmail, &custPhone, &custAddress,
		)
		if err != nil {
			return nil, err
		}
		s.Seller.ID = s.UserID
		if s.CustomerID != nil && custName != nil {
			s.Customer = &models.Customer{
				ID:    *s.CustomerID,
				Name:  *custName,
				Email: custEmail,
			}
			if custPhone != nil {
				s.Customer.Phone = *custPhone
			}
			if custAddress != nil {
				s.Customer.Address = *custAddress
			}
		}
		s.Items = make([]models.SaleItem, 0)

		sales = append(sales, &s)
		byID[s.ID] = &s
		saleIDs = append(saleIDs, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if len(saleIDs) == 0 {
		return sales, nil
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT
			si.id, si.sale_id, si.product_id,
			COALESCE(p.name, 'Producto eliminado') AS product_name,
			si.quantity, si.unit_price, si.subtotal
		FROM sale_items si
		LEFT JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = ANY($1)
		ORDER BY si.id
	`, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("query sale items failed: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it models.SaleItem
		if err := itemRows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal,
		); err != nil {
			return nil, err
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sales, nil
}

// GetSaleByID fetches a single sale with nested items, customer and seller.
func (r *SaleRepo) GetSaleByID(ctx context.Context, saleID int64) (*models.Sale, error) {
	var s models.Sale
	var custName, custPhone, custAddress *string
	var custEmail *string

	err := r.db.QueryRow(ctx, `
		SELECT
			s.id, s.code, s.user_id, s.customer_id,
			s.total, s.payment_method, s.is_credit, s.status, s.created_at,
			u.name, u.email, u.role,
			c.name, c.email, c.phone, c.address
		FROM sales s
		JOIN users u ON u.id = s.user_id
		LEFT JOIN customers c ON c.id = s.customer_id
		WHERE s.id = $1
	`, saleID).Scan(
		&s.ID, &s.Code, &s.UserID, &s.CustomerID,
		&s.Total, &s.PaymentMethod, &s.IsCredit, &s.Status, &s.CreatedAt,
		&s.Seller.Name, &s.Seller.Email, &s.Seller.Role,
		&custName, &custEmail, &custPhone, &custAddress,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch sale failed: %w", err)
	}
	s.Seller.ID = s.UserID
	if s.CustomerID != nil && custName != nil {
		s.Customer = &models.Customer{ID: *s.CustomerID, Name: *custName, Email: custEmail}
		if custPhone != nil {
			s.Customer.Phone = *custPhone
		}
		if custAddress != nil {
			s.Customer.Address = *custAddress
		}
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT
			si.id, si.sale_id, si.product_id,
			COALESCE(p.name, 'Producto eliminado') AS product_name,
			si.quantity, si.unit_price, si.subtotal
		FROM sale_items si
		LEFT JOIN products p ON p.id = si.product_id
		WHERE si.sale_id = $1
		ORDER BY si.id
	`, saleID)
	if err != nil {
		return nil, fmt.Errorf("fetch sale items failed: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it models.SaleItem
		if err := itemRows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.Subtotal,
		); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &s, nil
}
