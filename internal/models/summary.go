package models

// GlobalPendingSummary aggregates review work outstanding across the cohort.
type GlobalPendingSummary struct {
	PendingSubmissions int `json:"pending_submissions"`
	PendingDocuments   int `json:"pending_documents"`
	PendingTrades      int `json:"pending_trades"`
	PendingEnrollments int `json:"pending_enrollments"`
	StagesNotStarted   int `json:"stages_not_started"`
}

// Total returns the sum of all pending counters.
func (s GlobalPendingSummary) Total() int {
	return s.PendingSubmissions + s.PendingDocuments + s.PendingTrades + s.PendingEnrollments
}

// ParticipantStatus labels overall journey state for a participant.
type ParticipantStatus string

const (
	ParticipantNotStarted ParticipantStatus = "not_started"
	ParticipantInProgress ParticipantStatus = "in_progress"
	ParticipantCompleted  ParticipantStatus = "completed"
)

// StageProgress aggregates a participant's journey rows over active stages.
// Started counts rows that are in progress or completed; InProgressOrder is
// the stage_order of the in-progress row, zero when there is none.
type StageProgress struct {
	Started         int `db:"started"`
	Completed       int `db:"completed"`
	InProgressOrder int `db:"in_progress_order"`
}

// ParticipantSummary is a per-participant review rollup.
type ParticipantSummary struct {
	UserID           string            `json:"user_id"`
	FullName         string            `json:"full_name"`
	Batch            string            `json:"batch"`
	PendingTasks     int               `json:"pending_tasks"`
	PendingDocuments int               `json:"pending_documents"`
	PendingTrades    int               `json:"pending_trades"`
	CurrentStage     int               `json:"current_stage"`
	Status           ParticipantStatus `json:"status"`
}

// TotalPending returns the participant's combined pending workload.
func (s ParticipantSummary) TotalPending() int {
	return s.PendingTasks + s.PendingDocuments + s.PendingTrades
}
