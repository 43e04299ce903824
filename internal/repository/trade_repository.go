package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// TradeRepository provides database access for participant trades.
type TradeRepository struct {
	db *sqlx.DB
}

func NewTradeRepository(db *sqlx.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// CountByStatus returns the number of trades with the given status.
func (r *TradeRepository) CountByStatus(ctx context.Context, status models.TradeStatus) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM trades WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("count trades by status: %w", err)
	}
	return total, nil
}

// PendingCountByUser returns per-user counts of trades awaiting review.
func (r *TradeRepository) PendingCountByUser(ctx context.Context) (map[string]int, error) {
	const query = `SELECT user_id, COUNT(*) FROM trades WHERE status = $1 GROUP BY user_id`

	rows, err := r.db.QueryxContext(ctx, query, models.TradePending)
	if err != nil {
		return nil, fmt.Errorf("count pending trades by user: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var count int
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("scan pending trade count: %w", err)
		}
		counts[userID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending trade counts: %w", err)
	}
	return counts, nil
}

// ListForReport returns trade rows for the report engine.
func (r *TradeRepository) ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.TradeReportRow, error) {
	query := `SELECT id, user_id, amount, currency, status, trade_date FROM trades WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("trade_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("trade_date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY trade_date DESC"

	var rows []models.TradeReportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list trades for report: %w", err)
	}
	return rows, nil
}

// StatusCounts returns trade counts grouped by status within the filter's
// date range.
func (r *TradeRepository) StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM trades WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("trade_date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("trade_date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " GROUP BY status"

	return scanStatusCounts(r.db, ctx, query, args)
}
