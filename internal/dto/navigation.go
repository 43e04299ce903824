package dto

import "github.com/Cheragshah/udyamipmp-api/internal/models"

// NavigationResponse returns the ordered links and landing page for a role.
type NavigationResponse struct {
	Role        models.UserRole  `json:"role"`
	Links       []models.NavLink `json:"links"`
	DefaultPath string           `json:"default_path"`
	Fallback    bool             `json:"fallback"`
}
