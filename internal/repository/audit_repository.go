package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// AuditLogRepository is the append-only sink for privileged actions.
// Entries are never updated or deleted; the duplicate-stamp window is
// derived from the bounded lookback query.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
	FindRecent(ctx context.Context, staffPhone, customerID string, action domain.AuditAction, since time.Time) (*domain.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository instantiates the repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditLog) error {
	const query = `
        INSERT INTO audit_logs (staff_phone, customer_id, action, details)
        VALUES ($1,$2,$3,$4)
        RETURNING id, timestamp`

	err := r.pool.QueryRow(ctx, query,
		entry.StaffPhone,
		entry.CustomerID,
		entry.Action,
		entry.Details,
	).Scan(&entry.ID, &entry.Timestamp)
	return translateError(err)
}

func (r *auditLogRepository) FindRecent(ctx context.Context, staffPhone, customerID string, action domain.AuditAction, since time.Time) (*domain.AuditLog, error) {
	const query = `
        SELECT id, staff_phone, customer_id, action, timestamp, details
        FROM audit_logs
        WHERE staff_phone=$1 AND customer_id=$2 AND action=$3 AND timestamp >= $4
        ORDER BY timestamp DESC LIMIT 1`

	var entry domain.AuditLog
	if err := r.pool.QueryRow(ctx, query, staffPhone, customerID, action, since).Scan(
		&entry.ID,
		&entry.StaffPhone,
		&entry.CustomerID,
		&entry.Action,
		&entry.Timestamp,
		&entry.Details,
	); err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
        SELECT id, staff_phone, customer_id, action, timestamp, details
        FROM audit_logs ORDER BY timestamp DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.StaffPhone,
			&entry.CustomerID,
			&entry.Action,
			&entry.Timestamp,
			&entry.Details,
		); err != nil {
			return nil, translateError(err)
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
