package models

import (
	"encoding/json"
	"time"
)

// ReportSource enumerates the collections the report generator can project.
type ReportSource string

const (
	SourceProfiles        ReportSource = "profiles"
	SourceTaskSubmissions ReportSource = "task_submissions"
	SourceDocuments       ReportSource = "documents"
	SourceTrades          ReportSource = "trades"
	SourceAttendance      ReportSource = "attendance"
	SourceProgress        ReportSource = "participant_progress"
	SourceEcommerce       ReportSource = "ecommerce_setups"
)

// AllReportSources lists every selectable source in display order.
func AllReportSources() []ReportSource {
	return []ReportSource{
		SourceProfiles,
		SourceTaskSubmissions,
		SourceDocuments,
		SourceTrades,
		SourceAttendance,
		SourceProgress,
		SourceEcommerce,
	}
}

// ValidReportSource reports whether the source is selectable.
func ValidReportSource(s ReportSource) bool {
	for _, source := range AllReportSources() {
		if source == s {
			return true
		}
	}
	return false
}

// ReportField describes one selectable output column of a source.
type ReportField struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

// ReportRow is a projected record keyed by field key.
type ReportRow map[string]string

// FieldCatalog returns the fixed field catalog of a source, in column order.
func FieldCatalog(source ReportSource) []ReportField {
	switch source {
	case SourceProfiles:
		return []ReportField{
			{Key: "full_name", Label: "Participant Name", Default: true},
			{Key: "email", Label: "Email", Default: true},
			{Key: "batch_number", Label: "Batch", Default: true},
			{Key: "coach_name", Label: "Assigned Coach", Default: false},
			{Key: "created_at", Label: "Joined On", Default: false},
		}
	case SourceTaskSubmissions:
		return []ReportField{
			{Key: "participant_name", Label: "Participant Name", Default: true},
			{Key: "batch_number", Label: "Batch", Default: false},
			{Key: "task_title", Label: "Task", Default: true},
			{Key: "status", Label: "Status", Default: true},
			{Key: "submitted_at", Label: "Submitted On", Default: true},
			{Key: "verified_at", Label: "Verified On", Default: false},
		}
	case SourceDocuments:
		return []ReportField{
			{Key: "participant_name", Label: "Participant Name", Default: true},
			{Key: "batch_number", Label: "Batch", Default: false},
			{Key: "document_type", Label: "Document Type", Default: true},
			{Key: "status", Label: "Status", Default: true},
			{Key: "created_at", Label: "Uploaded On", Default: true},
		}
	case SourceTrades:
		return []ReportField{
			{Key: "participant_name", Label: "Participant Name", Default: true},
			{Key: "batch_number", Label: "Batch", Default: false},
			{Key: "amount", Label: "Amount", Default: true},
			{Key: "currency", Label: "Currency", Default: false},
			{Key: "status", Label: "Status", Default: true},
			{Key: "trade_date", Label: "Trade Date", Default: true},
		}
	case SourceAttendance:
		return []ReportField{
			{Key: "participant_name", Label: "Participant Name", Default: true},
			{Key: "batch_number", Label: "Batch", Default: false},
			{Key: "session_type", Label: "Session", Default: true},
			{Key: "marked_by", Label: "Marked By", Default: false},
			{Key: "completed_at", Label: "Completed On", Default: true},
		}
	case SourceProgress:
		return []ReportField{
			{Key: "participant_name", Label: "Participant Name", Default: true},
			{Key: "batch_number", Label: "Batch", Default: false},
			{Key: "stage_name", Label: "Stage", Default: true},
			{Key: "status", Label: "Status", Default: true},
			{Key: "started_at", Label: "Started On", Default: false},
			{Key: "completed_at", Label: "Completed On", Default: true},
		}
	case SourceEcommerce:
		return []ReportField{
			{Key: "participant_name", Label: "Participant Name", Default: true},
			{Key: "batch_number", Label: "Batch", Default: false},
			{Key: "platform", Label: "Platform", Default: true},
			{Key: "status", Label: "Status", Default: true},
			{Key: "date", Label: "Setup Date", Default: true},
		}
	default:
		return nil
	}
}

// DateColumn returns the timestamp column used for date-range filtering.
// Each source carries its own notion of "when it happened".
func DateColumn(source ReportSource) string {
	switch source {
	case SourceTaskSubmissions:
		return "submitted_at"
	case SourceTrades:
		return "trade_date"
	case SourceAttendance:
		return "completed_at"
	case SourceProgress:
		return "completed_at"
	case SourceEcommerce:
		return "date"
	default:
		return "created_at"
	}
}

// ExportFormat enumerates supported export encodings.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus tracks export job lifecycle.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJobParams captures the report request an export job replays.
type ExportJobParams struct {
	Source   ReportSource `json:"source"`
	Fields   []string     `json:"fields"`
	Status   string       `json:"status,omitempty"`
	Batch    string       `json:"batch,omitempty"`
	DateFrom *time.Time   `json:"date_from,omitempty"`
	DateTo   *time.Time   `json:"date_to,omitempty"`
	Format   ExportFormat `json:"format"`
}

// Value helpers keep sqlx storing params as JSON text.
func (p ExportJobParams) MarshalBinary() ([]byte, error) { return json.Marshal(p) }

// ExportJobUpdate carries the mutable fields of a job row. Nil fields are
// left untouched.
type ExportJobUpdate struct {
	Status       *ExportStatus
	Progress     *int
	ResultURL    *string
	ErrorMessage *string
	FinishedAt   *time.Time
}

// ExportJob is a persisted asynchronous report export.
type ExportJob struct {
	ID           string          `db:"id" json:"id"`
	Source       ReportSource    `db:"source" json:"source"`
	Params       json.RawMessage `db:"params" json:"params"`
	Status       ExportStatus    `db:"status" json:"status"`
	Progress     int             `db:"progress" json:"progress"`
	ResultURL    *string         `db:"result_url" json:"result_url,omitempty"`
	CreatedBy    string          `db:"created_by" json:"created_by"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time      `db:"finished_at" json:"finished_at,omitempty"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
}
