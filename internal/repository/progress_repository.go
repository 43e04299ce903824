package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// ProgressRepository provides database access for per-stage participant
// progress. Rows are unique per (user_id, stage_id).
type ProgressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CountAll returns the total number of progress rows. Stages a participant
// never touched have no row at all, so "not started" counts are derived as
// participants x active stages minus this number.
func (r *ProgressRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM participant_progress`); err != nil {
		return 0, fmt.Errorf("count progress rows: %w", err)
	}
	return total, nil
}

// StageProgressByUser aggregates journey rows per user over active stages:
// how many stages the user has touched, how many are completed, and the
// stage_order of the in-progress row when one exists. Users with no rows are
// absent from the map.
func (r *ProgressRepository) StageProgressByUser(ctx context.Context) (map[string]models.StageProgress, error) {
	const query = `
		SELECT p.user_id,
			COUNT(*) FILTER (WHERE p.status = $1 OR p.status = $2) AS started,
			COUNT(*) FILTER (WHERE p.status = $2) AS completed,
			COALESCE(MAX(s.stage_order) FILTER (WHERE p.status = $1), 0) AS in_progress_order
		FROM participant_progress p
		JOIN journey_stages s ON s.id = p.stage_id
		WHERE s.is_active = true
		GROUP BY p.user_id`

	rows, err := r.db.QueryxContext(ctx, query, models.ProgressInProgress, models.ProgressCompleted)
	if err != nil {
		return nil, fmt.Errorf("stage progress by user: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]models.StageProgress)
	for rows.Next() {
		var userID string
		var p models.StageProgress
		if err := rows.Scan(&userID, &p.Started, &p.Completed, &p.InProgressOrder); err != nil {
			return nil, fmt.Errorf("scan stage progress row: %w", err)
		}
		progress[userID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stage progress rows: %w", err)
	}
	return progress, nil
}

// UpsertCompleted marks a stage completed for a user in one statement. The
// unique (user_id, stage_id) constraint makes the write idempotent under
// concurrent callers: a row is inserted or the existing one is updated, never
// duplicated.
func (r *ProgressRepository) UpsertCompleted(ctx context.Context, userID, stageID string) error {
	const query = `
		INSERT INTO participant_progress (id, user_id, stage_id, status, started_at, completed_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id, stage_id)
		DO UPDATE SET status = EXCLUDED.status, completed_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, stageID, models.ProgressCompleted); err != nil {
		return fmt.Errorf("upsert completed progress: %w", err)
	}
	return nil
}

// ListForReport returns progress rows joined with stage names for the
// report engine. Participant names and batches are attached by the caller
// from the profile lookup.
func (r *ProgressRepository) ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.ProgressReportRow, error) {
	query := `
		SELECT p.id, p.user_id, s.name AS stage_name, p.status, p.started_at, p.completed_at
		FROM participant_progress p
		JOIN journey_stages s ON s.id = p.stage_id
		WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("p.completed_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("p.completed_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.completed_at DESC NULLS LAST"

	var rows []models.ProgressReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list progress for report: %w", err)
	}
	return rows, nil
}

// StatusCounts returns row counts grouped by status, honouring the same
// filters as ListForReport minus status.
func (r *ProgressRepository) StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM participant_progress WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("completed_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("completed_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY status"

	return scanStatusCounts(r.db, ctx, query, args)
}

func scanStatusCounts(db *sqlx.DB, ctx context.Context, query string, args []interface{}) (map[string]int, error) {
	rows, err := db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}
