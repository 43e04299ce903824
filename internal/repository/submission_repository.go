package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// SubmissionRepository provides database access for task submissions.
// Rows are unique per (user_id, task_id).
type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// CountByStatus returns the number of submissions with the given status.
func (r *SubmissionRepository) CountByStatus(ctx context.Context, status models.SubmissionStatus) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM task_submissions WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("count submissions by status: %w", err)
	}
	return total, nil
}

// PendingCountByUser returns per-user counts of submissions awaiting review.
func (r *SubmissionRepository) PendingCountByUser(ctx context.Context) (map[string]int, error) {
	const query = `SELECT user_id, COUNT(*) FROM task_submissions WHERE status = $1 GROUP BY user_id`

	rows, err := r.db.QueryxContext(ctx, query, models.SubmissionSubmitted)
	if err != nil {
		return nil, fmt.Errorf("count pending submissions by user: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("scan pending submission count: %w", err)
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending submission counts: %w", err)
	}
	return counts, nil
}

// GetStatus returns the current status of a user's submission for a task,
// or empty string when no row exists yet.
func (r *SubmissionRepository) GetStatus(ctx context.Context, userID, taskID string) (models.SubmissionStatus, error) {
	var status models.SubmissionStatus
	err := r.db.GetContext(ctx, &status, `SELECT status FROM task_submissions WHERE user_id = $1 AND task_id = $2`, userID, taskID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get submission status: %w", err)
	}
	return status, nil
}

// bulkVerifyNotes marks rows written by the bulk flow so a later reviewer can
// tell them apart from individually reviewed submissions.
const bulkVerifyNotes = "Verified via bulk action"

// UpsertVerified marks a submission verified in one statement. The unique
// (user_id, task_id) constraint makes the write safe under concurrent
// verifiers: whichever statement runs second updates the same row instead of
// inserting a duplicate.
func (r *SubmissionRepository) UpsertVerified(ctx context.Context, userID, taskID, verifiedBy string) error {
	const query = `
		INSERT INTO task_submissions (id, user_id, task_id, status, verified_by, verified_at, notes)
		VALUES ($1, $2, $3, $4, $5, NOW(), $6)
		ON CONFLICT (user_id, task_id)
		DO UPDATE SET status = EXCLUDED.status, verified_by = EXCLUDED.verified_by, verified_at = NOW(), notes = EXCLUDED.notes`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, taskID, models.SubmissionVerified, verifiedBy, bulkVerifyNotes); err != nil {
		return fmt.Errorf("upsert verified submission: %w", err)
	}
	return nil
}

// ListForReport returns submissions joined with task titles for the report
// engine.
func (r *SubmissionRepository) ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.SubmissionReportRow, error) {
	query := `
		SELECT ts.id, ts.user_id, t.title AS task_title, ts.status, ts.submitted_at, ts.verified_at
		FROM task_submissions ts
		JOIN tasks t ON t.id = ts.task_id
		WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("ts.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("ts.submitted_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("ts.submitted_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ts.submitted_at DESC NULLS LAST"

	var rows []models.SubmissionReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions for report: %w", err)
	}
	return rows, nil
}

// StatusCounts returns submission counts grouped by status within the
// filter's date range.
func (r *SubmissionRepository) StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM task_submissions WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("submitted_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("submitted_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY status"

	return scanStatusCounts(r.db, ctx, query, args)
}
