package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// EnrollmentRepository provides database access for enrollment requests.
type EnrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// CountByStatus returns the number of enrollment requests with the given status.
func (r *EnrollmentRepository) CountByStatus(ctx context.Context, status models.EnrollmentStatus) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM enrollment_requests WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("count enrollments by status: %w", err)
	}
	return total, nil
}
