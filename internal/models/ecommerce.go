package models

import "time"

// EcommerceStatus tracks a participant's store setup state.
type EcommerceStatus string

const (
	EcommercePending    EcommerceStatus = "pending"
	EcommerceInProgress EcommerceStatus = "in_progress"
	EcommerceCompleted  EcommerceStatus = "completed"
)

// EcommerceSetup records a participant's online store setup milestone.
type EcommerceSetup struct {
	ID       string          `db:"id" json:"id"`
	UserID   string          `db:"user_id" json:"user_id"`
	Platform string          `db:"platform" json:"platform"`
	StoreURL *string         `db:"store_url" json:"store_url,omitempty"`
	Status   EcommerceStatus `db:"status" json:"status"`
	Date     time.Time       `db:"date" json:"date"`
}
