package models

import "time"

// ReportFilter carries the server-side filters applied by report queries.
// Batch filtering is not part of it: batches live on profiles, so the report
// engine resolves them through a profile lookup after rows are fetched.
type ReportFilter struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// SubmissionReportRow is a task submission joined with its task title.
type SubmissionReportRow struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	TaskTitle   string     `db:"task_title"`
	Status      string     `db:"status"`
	SubmittedAt *time.Time `db:"submitted_at"`
	VerifiedAt  *time.Time `db:"verified_at"`
}

// DocumentReportRow is a document row for the report engine.
type DocumentReportRow struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	DocumentType string    `db:"document_type"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

// TradeReportRow is a trade row for the report engine.
type TradeReportRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Amount    float64   `db:"amount"`
	Currency  string    `db:"currency"`
	Status    string    `db:"status"`
	TradeDate time.Time `db:"trade_date"`
}

// AttendanceReportRow is a session completion row for the report engine.
type AttendanceReportRow struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	SessionType string    `db:"session_type"`
	MarkedBy    *string   `db:"marked_by"`
	CompletedAt time.Time `db:"completed_at"`
}

// ProgressReportRow is a stage progress row joined with its stage name.
type ProgressReportRow struct {
	ID          string     `db:"id"`
	UserID      string     `db:"user_id"`
	StageName   string     `db:"stage_name"`
	Status      string     `db:"status"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
}

// EcommerceReportRow is an e-commerce setup row for the report engine.
type EcommerceReportRow struct {
	ID       string    `db:"id"`
	UserID   string    `db:"user_id"`
	Platform string    `db:"platform"`
	Status   string    `db:"status"`
	Date     time.Time `db:"date"`
}

// ProfileReportRow is a profile joined with its assigned coach's name.
type ProfileReportRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	FullName    string    `db:"full_name"`
	Email       string    `db:"email"`
	BatchNumber string    `db:"batch_number"`
	CoachName   string    `db:"coach_name"`
	CreatedAt   time.Time `db:"created_at"`
}
