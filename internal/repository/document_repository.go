package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// DocumentRepository provides database access for participant documents.
type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// CountAwaitingReview returns the number of documents pending a coach's
// decision. Both upload states count as awaiting review.
func (r *DocumentRepository) CountAwaitingReview(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM documents WHERE status IN ($1, $2)`
	var total int
	if err := r.db.GetContext(ctx, &total, query, models.DocumentPending, models.DocumentSubmitted); err != nil {
		return 0, fmt.Errorf("count documents awaiting review: %w", err)
	}
	return total, nil
}

// PendingCountByUser returns per-user counts of documents awaiting review.
func (r *DocumentRepository) PendingCountByUser(ctx context.Context) (map[string]int, error) {
	const query = `SELECT user_id, COUNT(*) FROM documents WHERE status IN ($1, $2) GROUP BY user_id`

	rows, err := r.db.QueryxContext(ctx, query, models.DocumentPending, models.DocumentSubmitted)
	if err != nil {
		return nil, fmt.Errorf("count pending documents by user: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("scan pending document count: %w", err)
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending document counts: %w", err)
	}
	return counts, nil
}

// bulkApproveNotes marks documents approved through the bulk flow rather
// than an individual review.
const bulkApproveNotes = "Approved via bulk action"

// BulkApprove approves all the given documents in a single statement and
// returns how many rows changed. One UPDATE regardless of how many ids are
// selected.
func (r *DocumentRepository) BulkApprove(ctx context.Context, ids []string, approvedBy string) (int64, error) {
	const query = `
		UPDATE documents
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), review_notes = $3
		WHERE id = ANY($4)`
	result, err := r.db.ExecContext(ctx, query, models.DocumentApproved, approvedBy, bulkApproveNotes, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("bulk approve documents: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("bulk approve rows affected: %w", err)
	}
	return rows, nil
}

// ListForReport returns document rows for the report engine.
func (r *DocumentRepository) ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.DocumentReportRow, error) {
	query := `SELECT id, user_id, document_type, status, created_at FROM documents WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var rows []models.DocumentReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list documents for report: %w", err)
	}
	return rows, nil
}

// StatusCounts returns document counts grouped by status within the filter's
// date range.
func (r *DocumentRepository) StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM documents WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY status"

	return scanStatusCounts(r.db, ctx, query, args)
}
