package models

import "time"

// SessionType enumerates the program's scheduled session kinds.
type SessionType string

const (
	SessionOrientation    SessionType = "orientation"
	SessionMentorship     SessionType = "mentorship"
	SessionMasterclass    SessionType = "masterclass"
	SessionEcommerceSetup SessionType = "ecommerce_setup"
	SessionGraduation     SessionType = "graduation"
)

// SessionCompletion marks a participant as having completed a session type.
type SessionCompletion struct {
	ID          string      `db:"id" json:"id"`
	UserID      string      `db:"user_id" json:"user_id"`
	SessionType SessionType `db:"session_type" json:"session_type"`
	MarkedBy    *string     `db:"marked_by" json:"marked_by,omitempty"`
	Notes       *string     `db:"notes" json:"notes,omitempty"`
	CompletedAt time.Time   `db:"completed_at" json:"completed_at"`
}

// SpecialSessionLink is an admin-curated session announcement.
//
// State machine: active <-> inactive toggles freely until the link is
// completed; completed is terminal (is_completed=true, is_active=false).
type SpecialSessionLink struct {
	ID          string      `db:"id" json:"id"`
	Title       string      `db:"title" json:"title"`
	LinkURL     string      `db:"link_url" json:"link_url"`
	SessionType SessionType `db:"session_type" json:"session_type"`
	TargetBatch *string     `db:"target_batch" json:"target_batch,omitempty"`
	IsActive    bool        `db:"is_active" json:"is_active"`
	IsCompleted bool        `db:"is_completed" json:"is_completed"`
	CreatedBy   *string     `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// StageNameForSession maps a session type to the journey stage it advances,
// or "" when the session does not correspond to a stage.
func StageNameForSession(t SessionType) string {
	switch t {
	case SessionOrientation:
		return "Orientation"
	case SessionMentorship:
		return "Mentorship"
	case SessionEcommerceSetup:
		return "E-commerce Setup"
	case SessionGraduation:
		return "Graduation"
	default:
		return ""
	}
}
