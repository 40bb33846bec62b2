package dbrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
	"github.com/shopspring/decimal"
)

type ReportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepo(db *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{db: db}
}

// GetSummaryReport aggregates today's sales per day, the top sold products,
// and the day's ledger totals. Read-only raw SQL aggregations.
func (r *ReportRepo) GetSummaryReport(ctx context.Context) (*models.SummaryReport, error) {
	today := utils.Today()
	tomorrow := today.AddDate(0, 0, 1)

	report := &models.SummaryReport{
		Date:        today,
		SalesByDay:  make([]models.DailySaleTotal, 0),
		TopProducts: make([]models.TopProduct, 0),
	}

	// 1. Sales grouped by day
	dayRows, err := r.db.Query(ctx, `
		SELECT DATE(created_at) AS day, SUM(total)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY DATE(created_at)
		ORDER BY day
	`, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("query sales by day failed: %w", err)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var d models.DailySaleTotal
		if err := dayRows.Scan(&d.Date, &d.Total); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		report.SalesByDay = append(report.SalesByDay, d)
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	// 2. Top 10 products by quantity sold
	topRows, err := r.db.Query(ctx, `
		SELECT
			COALESCE(p.name, 'Desconocido'),
			SUM(si.quantity) AS quantity_sold,
			SUM(si.subtotal) AS total
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		LEFT JOIN products p ON p.id = si.product_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		GROUP BY p.name
		ORDER BY quantity_sold DESC
		LIMIT 10
	`, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("query top products failed: %w", err)
	}
	defer topRows.Close()

	for topRows.Next() {
		var t models.TopProduct
		if err := topRows.Scan(&t.Name, &t.Quantity, &t.Total); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		report.TopProducts = append(report.TopProducts, t)
	}
	if err := topRows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	// 3. Ledger totals
	var income, expense decimal.Decimal
	err = r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = $2), 0)
		FROM financial_movements
		WHERE created_at >= $3 AND created_at < $4
	`, models.FIN_INCOME, models.FIN_EXPENSE, today, tomorrow).Scan(&income, &expense)
	if err != nil {
		return nil, fmt.Errorf("query finance totals failed: %w", err)
	}

	report.Finance = models.FinanceTotals{
		Income:  income.Round(2),
		Expense: expense.Round(2),
		Balance: income.Sub(expense).Round(2),
	}
	return report, nil
}
