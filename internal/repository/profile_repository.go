package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// ProfileRepository provides database access for participant profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs the repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// List returns profiles matching the filter with total count.
func (r *ProfileRepository) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error) {
	baseQuery := `FROM profiles WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Batch != "" && filter.Batch != models.BatchAll {
		conditions = append(conditions, fmt.Sprintf("batch_number = $%d", len(args)+1))
		args = append(args, filter.Batch)
	}
	if filter.CoachID != "" {
		conditions = append(conditions, fmt.Sprintf("assigned_coach_id = $%d", len(args)+1))
		args = append(args, filter.CoachID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"full_name":    true,
		"email":        true,
		"batch_number": true,
		"created_at":   true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "full_name"
	}
	sortOrder := strings.ToUpper(filter.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT id, user_id, full_name, email, batch_number, assigned_coach_id, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", baseQuery, sortBy, sortOrder, pageSize, offset)

	var profiles []models.Profile
	if err := r.db.SelectContext(ctx, &profiles, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}

	return profiles, total, nil
}

// RefsByUser returns the id/name/batch projection keyed by user_id, ordered
// by participant name. Operational tables reference user_id, so the lookup
// key follows that convention.
func (r *ProfileRepository) RefsByUser(ctx context.Context) ([]models.ProfileRef, error) {
	const query = `SELECT id, user_id, full_name, COALESCE(batch_number, '') AS batch_number FROM profiles ORDER BY full_name ASC`
	var refs []models.ProfileRef
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list profile refs: %w", err)
	}
	return refs, nil
}

// UserIDsByBatch resolves the participant user ids targeted by a batch.
// An empty batch or the "all" sentinel selects every participant.
func (r *ProfileRepository) UserIDsByBatch(ctx context.Context, batch string) ([]string, error) {
	query := `SELECT user_id FROM profiles`
	var args []interface{}
	if batch != "" && batch != models.BatchAll {
		query += ` WHERE batch_number = $1`
		args = append(args, batch)
	}
	query += ` ORDER BY full_name ASC`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list batch user ids: %w", err)
	}
	return ids, nil
}

// ListForReport returns profile rows joined with the assigned coach's name
// for the report engine. Profiles carry no status, so only the date range
// applies.
func (r *ProfileRepository) ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.ProfileReportRow, error) {
	query := `
		SELECT p.id, p.user_id, p.full_name, p.email, COALESCE(p.batch_number, '') AS batch_number,
		       COALESCE(c.full_name, '') AS coach_name, p.created_at
		FROM profiles p
		LEFT JOIN users c ON c.id = p.assigned_coach_id
		WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("p.created_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("p.created_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.full_name ASC"

	var rows []models.ProfileReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles for report: %w", err)
	}
	return rows, nil
}

// BatchCounts returns profile counts grouped by batch within the filter's
// date range. The profiles chart buckets by batch rather than status.
func (r *ProfileRepository) BatchCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error) {
	query := `SELECT COALESCE(batch_number, 'unassigned') AS batch, COUNT(*) FROM profiles WHERE 1=1`
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
	query += " GROUP BY batch"

	return scanStatusCounts(r.db, ctx, query, args)
}

// Count returns the number of participant profiles.
func (r *ProfileRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM profiles`); err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return total, nil
}
