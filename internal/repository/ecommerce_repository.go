package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// EcommerceRepository provides database access for store setup records.
type EcommerceRepository struct {
	db *sqlx.DB
}

func NewEcommerceRepository(db *sqlx.DB) *EcommerceRepository {
	return &EcommerceRepository{db: db}
}

// ListForReport returns e-commerce setup rows for the report engine.
func (r *EcommerceRepository) ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.EcommerceReportRow, error) {
	query := `SELECT id, user_id, platform, status, date FROM ecommerce_setups WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC"

	var rows []models.EcommerceReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ecommerce setups for report: %w", err)
	}
	return rows, nil
}

// StatusCounts returns setup counts grouped by status within the filter's
// date range.
func (r *EcommerceRepository) StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM ecommerce_setups WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY status"

	return scanStatusCounts(r.db, ctx, query, args)
}
