package models

import "time"

// DocumentStatus tracks the review state of an uploaded document.
type DocumentStatus string

const (
	DocumentPending     DocumentStatus = "pending"
	DocumentSubmitted   DocumentStatus = "submitted"
	DocumentUnderReview DocumentStatus = "under_review"
	DocumentApproved    DocumentStatus = "approved"
	DocumentRejected    DocumentStatus = "rejected"
)

// AwaitingReview reports whether the document still needs a reviewer decision.
func (s DocumentStatus) AwaitingReview() bool {
	return s == DocumentPending || s == DocumentSubmitted
}

// Document is a participant-uploaded file subject to review.
type Document struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"user_id"`
	DocumentType string         `db:"document_type" json:"document_type"`
	Status       DocumentStatus `db:"status" json:"status"`
	ReviewNotes  *string        `db:"review_notes" json:"review_notes,omitempty"`
	ReviewedBy   *string        `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time     `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
