package models

// NavLink is a role-scoped navigation entry.
type NavLink struct {
	ID        string   `db:"id" json:"id"`
	Role      UserRole `db:"role" json:"role"`
	Label     string   `db:"label" json:"label"`
	Path      string   `db:"path" json:"path"`
	SortOrder int      `db:"sort_order" json:"sort_order"`
	IsVisible bool     `db:"is_visible" json:"is_visible"`
	IsDefault bool     `db:"is_default" json:"is_default"`
}
