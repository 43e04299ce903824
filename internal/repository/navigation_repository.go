package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// NavigationRepository provides database access for role navigation links.
type NavigationRepository struct {
	db *sqlx.DB
}

func NewNavigationRepository(db *sqlx.DB) *NavigationRepository {
	return &NavigationRepository{db: db}
}

// ListByRole returns the visible links of a role in sort order.
func (r *NavigationRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.NavLink, error) {
	const query = `
		SELECT id, role, label, path, sort_order, is_visible, is_default
		FROM nav_links
		WHERE role = $1 AND is_visible = true
		ORDER BY sort_order ASC`

	var links []models.NavLink
	if err := r.db.SelectContext(ctx, &links, query, role); err != nil {
		return nil, fmt.Errorf("list nav links by role: %w", err)
	}
	return links, nil
}
