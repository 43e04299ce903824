package models

import "time"

// BatchAll is the sentinel batch filter meaning "no batch restriction".
const BatchAll = "all"

// Profile represents a program participant.
type Profile struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	FullName        string    `db:"full_name" json:"full_name"`
	Email           string    `db:"email" json:"email"`
	BatchNumber     *string   `db:"batch_number" json:"batch_number,omitempty"`
	AssignedCoachID *string   `db:"assigned_coach_id" json:"assigned_coach_id,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Batch returns the participant's batch number or empty when unassigned.
func (p Profile) Batch() string {
	if p.BatchNumber == nil {
		return ""
	}
	return *p.BatchNumber
}

// ProfileFilter captures filtering criteria for listing participants.
type ProfileFilter struct {
	Batch     string
	CoachID   string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ProfileRef is the minimal projection used for joins and batch filtering.
type ProfileRef struct {
	ID       string `db:"id" json:"id"`
	UserID   string `db:"user_id" json:"user_id"`
	FullName string `db:"full_name" json:"full_name"`
	Batch    string `db:"batch_number" json:"batch_number"`
}

// EnrollmentStatus tracks the review state of an enrollment request.
type EnrollmentStatus string

const (
	EnrollmentSubmitted EnrollmentStatus = "submitted"
	EnrollmentApproved  EnrollmentStatus = "approved"
	EnrollmentRejected  EnrollmentStatus = "rejected"
)

// EnrollmentRequest is a pending application to join the program.
type EnrollmentRequest struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Status    EnrollmentStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}
