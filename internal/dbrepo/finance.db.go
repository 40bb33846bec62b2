package dbrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
	"github.com/shopspring/decimal"
)

type FinanceRepo struct {
	db *pgxpool.Pool
}

func NewFinanceRepo(db *pgxpool.Pool) *FinanceRepo {
	return &FinanceRepo{db: db}
}

// CreateMovement appends a financial movement (manual register endpoint).
func (r *FinanceRepo) CreateMovement(ctx context.Context, m *models.FinancialMovement) (int64, error) {
	var movementID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO financial_movements(type, category, amount, description, user_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`,
		m.Type, m.Category, m.Amount, m.Description, m.UserID,
	).Scan(&movementID)
	if err != nil {
		return 0, fmt.Errorf("failed to create financial movement: %w", err)
	}
	return movementID, nil
}

// CreateFinancialMovementTx appends a financial movement within an existing tx.
func CreateFinancialMovementTx(ctx context.Context, tx pgx.Tx, m *models.FinancialMovement) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO financial_movements(type, category, amount, description, user_id)
		VALUES ($1,$2,$3,$4,$5)
	`,
		m.Type, m.Category, m.Amount, m.Description, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create financial movement in tx: %w", err)
	}
	return nil
}

// ListMovements returns the ledger newest-first with the recording user.
func (r *FinanceRepo) ListMovements(ctx context.Context) ([]*models.FinancialMovement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			fm.id, fm.type, fm.category, fm.amount,
			COALESCE(fm.description, ''), fm.user_id, u.name AS user_name,
			fm.created_at
		FROM financial_movements fm
		JOIN users u ON u.id = fm.user_id
		ORDER BY fm.created_at DESC, fm.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query financial movements failed: %w", err)
	}
	defer rows.Close()

	movements := make([]*models.FinancialMovement, 0)
	for rows.Next() {
		var m models.FinancialMovement
		if err := rows.Scan(
			&m.ID, &m.Type, &m.Category, &m.Amount,
			&m.Description, &m.UserID, &m.UserName, &m.CreatedAt,
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

// CashboxSummary builds today's cashbox view: completed sales flattened to
// item lines, the day's expenses, and income/expense/balance totals.
func (r *FinanceRepo) CashboxSummary(ctx context.Context) (*models.CashboxSummary, error) {
	today := utils.Today()
	tomorrow := today.AddDate(0, 0, 1)

	summary := &models.CashboxSummary{
		Date:     today,
		Sales:    make([]models.CashboxLine, 0),
		Expenses: make([]models.CashboxExpense, 0),
	}

	// Income is taken from the day's completed sales totals.
	var income decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(total), 0)
		FROM sales
		WHERE status = $1 AND created_at >= $2 AND created_at < $3
	`, models.SALE_COMPLETED, today, tomorrow).Scan(&income)
	if err != nil {
		return nil, fmt.Errorf("sum sales failed: %w", err)
	}

	saleRows, err := r.db.Query(ctx, `
		SELECT
			COALESCE(c.name, 'Venta rapida'),
			COALESCE(p.name, 'Producto eliminado'),
			si.quantity, si.unit_price, si.subtotal,
			s.payment_method, s.is_credit
		FROM sales s
		JOIN sale_items si ON si.sale_id = s.id
		LEFT JOIN customers c ON c.id = s.customer_id
		LEFT JOIN products p ON p.id = si.product_id
		WHERE s.status = $1 AND s.created_at >= $2 AND s.created_at < $3
		ORDER BY s.created_at, si.id
	`, models.SALE_COMPLETED, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("query cashbox sales failed: %w", err)
	}
	defer saleRows.Close()

	for saleRows.Next() {
		var line models.CashboxLine
		if err := saleRows.Scan(
			&line.Customer, &line.Product,
			&line.Quantity, &line.UnitPrice, &line.Total,
			&line.PaymentMethod, &line.IsCredit,
		); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		summary.Sales = append(summary.Sales, line)
	}
	if err := saleRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	var expense decimal.Decimal
	err = r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM financial_movements
		WHERE type = $1 AND created_at >= $2 AND created_at < $3
	`, models.FIN_EXPENSE, today, tomorrow).Scan(&expense)
	if err != nil {
		return nil, fmt.Errorf("sum expenses failed: %w", err)
	}

	expenseRows, err := r.db.Query(ctx, `
		SELECT category, COALESCE(description, ''), amount
		FROM financial_movements
		WHERE type = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at
	`, models.FIN_EXPENSE, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("query expenses failed: %w", err)
	}
	defer expenseRows.Close()

	for expenseRows.Next() {
		var e models.CashboxExpense
		if err := expenseRows.Scan(&e.Category, &e.Description, &e.Amount); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		summary.Expenses = append(summary.Expenses, e)
	}
	if err := expenseRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	summary.Totals = models.FinanceTotals{
		Income:  income.Round(2),
		Expense: expense.Round(2),
		Balance: income.Sub(expense).Round(2),
	}
	return summary, nil
}
