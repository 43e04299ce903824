package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// AuditRepository provides append-only access to the status-change log.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends one audit entry. Entries are never updated or deleted.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO audit_logs (id, table_name, record_id, action, old_status, new_status, changed_by, created_at)
		VALUES (:id, :table_name, :record_id, :action, :old_status, :new_status, :changed_by, NOW())`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create audit entry: %w", err)
	}
	return nil
}

// History returns the audit trail of a record, newest first. Actor names come
// from profiles; entries whose actor has no profile surface as "System".
func (r *AuditRepository) History(ctx context.Context, tableName, recordID string, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	const query = `
		SELECT a.id, a.table_name, a.record_id, a.action, a.old_status, a.new_status, a.changed_by, a.created_at,
		       COALESCE(p.full_name, 'System') AS changed_by_name
		FROM audit_logs a
		LEFT JOIN profiles p ON p.user_id = a.changed_by
		WHERE a.table_name = $1 AND a.record_id = $2
		ORDER BY a.created_at DESC
		LIMIT $3`

	var events []models.AuditEvent
	if err := r.db.SelectContext(ctx, &events, query, tableName, recordID, limit); err != nil {
		return nil, fmt.Errorf("list audit history: %w", err)
	}
	return events, nil
}
