package dbrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
)

type AuditRepo struct {
	db *pgxpool.Pool
}

func NewAuditRepo(db *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record appends an audit entry. Callers invoke it after the business
// operation has committed (and usually after the response is written), and
// only log the returned error: a failed audit write never fails the
// operation it describes.
func (r *AuditRepo) Record(ctx context.Context, userID *int64, action, detail, ip string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs(user_id, action, detail, ip)
		VALUES ($1,$2,$3,$4)
	`, userID, action, detail, ip)
	if err != nil {
		return fmt.Errorf("failed to record audit log: %w", err)
	}
	return nil
}

// ListLogs returns recent audit entries, newest first.
func (r *AuditRepo) ListLogs(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, action, COALESCE(detail, ''), COALESCE(ip, ''), created_at
		FROM audit_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit logs failed: %w", err)
	}
	defer rows.Close()

	logs := make([]*models.AuditLog, 0)
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Detail, &l.IP, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("row scan failed: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return logs, nil
}
