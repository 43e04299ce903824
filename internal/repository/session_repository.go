package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

// SessionRepository provides database access for session completions and
// special session links.
type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// DeleteCompletionsByType removes existing completions of a session type for
// the given users. Cohort completion replaces prior records wholesale, so any
// notes on replaced rows are discarded with them.
func (r *SessionRepository) DeleteCompletionsByType(ctx context.Context, sessionType models.SessionType, userIDs []string) (int64, error) {
	const query = `DELETE FROM session_completions WHERE session_type = $1 AND user_id = ANY($2)`
	result, err := r.db.ExecContext(ctx, query, sessionType, pq.Array(userIDs))
	if err != nil {
		return 0, fmt.Errorf("delete session completions: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete session completions rows affected: %w", err)
	}
	return rows, nil
}

// InsertCompletions inserts one completion per user in a single multi-row
// statement.
func (r *SessionRepository) InsertCompletions(ctx context.Context, sessionType models.SessionType, userIDs []string, markedBy string) (int, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO session_completions (id, user_id, session_type, marked_by, completed_at) VALUES `)
	args := make([]interface{}, 0, len(userIDs)*4)
	for i, userID := range userIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := len(args)
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, NOW())", base+1, base+2, base+3, base+4))
		args = append(args, uuid.NewString(), userID, sessionType, markedBy)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return 0, fmt.Errorf("insert session completions: %w", err)
	}
	return len(userIDs), nil
}

// ListForReport returns session completion rows for the attendance report.
func (r *SessionRepository) ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceReportRow, error) {
	query := `SELECT id, user_id, session_type, marked_by, completed_at FROM session_completions WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("session_type = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
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
	query += " ORDER BY completed_at DESC"

	var rows []models.AttendanceReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list session completions for report: %w", err)
	}
	return rows, nil
}

// StatusCounts buckets attendance by session type within the filter's date
// range.
func (r *SessionRepository) StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error) {
	query := `SELECT session_type, COUNT(*) FROM session_completions WHERE 1=1`
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
	query += " GROUP BY session_type"

	return scanStatusCounts(r.db, ctx, query, args)
}

// CreateLink stores a new special session link.
func (r *SessionRepository) CreateLink(ctx context.Context, link *models.SpecialSessionLink) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO special_session_links (id, title, link_url, session_type, target_batch, is_active, is_completed, created_by, created_at)
		VALUES (:id, :title, :link_url, :session_type, :target_batch, :is_active, :is_completed, :created_by, NOW())`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("create session link: %w", err)
	}
	return nil
}

// GetLink fetches a link by id.
func (r *SessionRepository) GetLink(ctx context.Context, id string) (*models.SpecialSessionLink, error) {
	const query = `SELECT id, title, link_url, session_type, target_batch, is_active, is_completed, created_by, created_at FROM special_session_links WHERE id = $1`
	var link models.SpecialSessionLink
	if err := r.db.GetContext(ctx, &link, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrLinkNotFound
		}
		return nil, fmt.Errorf("get session link: %w", err)
	}
	return &link, nil
}

// ListLinks returns links newest first, optionally only active ones.
func (r *SessionRepository) ListLinks(ctx context.Context, activeOnly bool) ([]models.SpecialSessionLink, error) {
	query := `SELECT id, title, link_url, session_type, target_batch, is_active, is_completed, created_by, created_at FROM special_session_links`
	if activeOnly {
		query += ` WHERE is_active = true AND is_completed = false`
	}
	query += ` ORDER BY created_at DESC`

	var links []models.SpecialSessionLink
	if err := r.db.SelectContext(ctx, &links, query); err != nil {
		return nil, fmt.Errorf("list session links: %w", err)
	}
	return links, nil
}

// UpdateLink applies edits to a link that has not been completed. Completed
// links are terminal and refuse edits at the database level.
func (r *SessionRepository) UpdateLink(ctx context.Context, link *models.SpecialSessionLink) error {
	const query = `
		UPDATE special_session_links
		SET title = :title, link_url = :link_url, target_batch = :target_batch, is_active = :is_active
		WHERE id = :id AND is_completed = false`
	result, err := r.db.NamedExecContext(ctx, query, link)
	if err != nil {
		return fmt.Errorf("update session link: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session link rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrLinkCompleted
	}
	return nil
}

// MarkLinkCompleted transitions a link into its terminal state. The guard on
// is_completed keeps the transition one-way even under concurrent requests.
func (r *SessionRepository) MarkLinkCompleted(ctx context.Context, id string) error {
	const query = `
		UPDATE special_session_links
		SET is_completed = true, is_active = false
		WHERE id = $1 AND is_completed = false`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark session link completed: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark session link completed rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrLinkCompleted
	}
	return nil
}

// DeleteLink removes a link permanently.
func (r *SessionRepository) DeleteLink(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM special_session_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session link: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session link rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrLinkNotFound
	}
	return nil
}
