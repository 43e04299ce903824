package models

import "time"

// SubmissionStatus tracks the review state of a task submission.
type SubmissionStatus string

const (
	SubmissionNotStarted SubmissionStatus = "not_started"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionSubmitted  SubmissionStatus = "submitted"
	SubmissionVerified   SubmissionStatus = "verified"
	SubmissionRejected   SubmissionStatus = "rejected"
)

// IsTerminal reports whether the status permits no further review action.
func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionVerified || s == SubmissionRejected
}

// TaskSubmission is a participant's attempt at a task, unique per (user_id, task_id).
type TaskSubmission struct {
	ID          string           `db:"id" json:"id"`
	UserID      string           `db:"user_id" json:"user_id"`
	TaskID      string           `db:"task_id" json:"task_id"`
	Status      SubmissionStatus `db:"status" json:"status"`
	Notes       *string          `db:"notes" json:"notes,omitempty"`
	VerifiedBy  *string          `db:"verified_by" json:"verified_by,omitempty"`
	VerifiedAt  *time.Time       `db:"verified_at" json:"verified_at,omitempty"`
	SubmittedAt *time.Time       `db:"submitted_at" json:"submitted_at,omitempty"`
}
