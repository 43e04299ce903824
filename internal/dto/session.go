package dto

import "github.com/Cheragshah/udyamipmp-api/internal/models"

// CreateSessionLinkRequest registers a new special session link.
type CreateSessionLinkRequest struct {
	Title       string             `json:"title" validate:"required"`
	LinkURL     string             `json:"link_url" validate:"required,url"`
	SessionType models.SessionType `json:"session_type" validate:"required"`
	TargetBatch *string            `json:"target_batch,omitempty"`
}

// UpdateSessionLinkRequest edits a link before completion.
type UpdateSessionLinkRequest struct {
	Title       *string `json:"title,omitempty"`
	LinkURL     *string `json:"link_url,omitempty"`
	TargetBatch *string `json:"target_batch,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
