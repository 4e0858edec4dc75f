package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/tallerpro/booking-api/internal/service/audit"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, entry *audit.Entry) error {
	query := `
		INSERT INTO booking_audit_log (operation, outcome, cita_id, actor, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		entry.Operation,
		entry.Outcome,
		entry.CitaID,
		entry.Actor,
		entry.Detail,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	query := `
		SELECT id, operation, outcome, cita_id, actor, detail, created_at
		FROM booking_audit_log
		ORDER BY created_at DESC
		LIMIT $1`

	var entries []audit.Entry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
