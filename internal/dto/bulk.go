package dto

// BulkVerifyTasksRequest verifies a participant's selected tasks in one batch.
type BulkVerifyTasksRequest struct {
	UserID  string   `json:"user_id" validate:"required"`
	TaskIDs []string `json:"task_ids" validate:"required,min=1"`
}

// BulkApproveDocumentsRequest approves the selected documents at once.
type BulkApproveDocumentsRequest struct {
	DocumentIDs []string `json:"document_ids" validate:"required,min=1"`
}

// BulkCompleteStagesRequest completes the selected stages for a participant.
type BulkCompleteStagesRequest struct {
	UserID   string   `json:"user_id" validate:"required"`
	StageIDs []string `json:"stage_ids" validate:"required,min=1"`
}

// BulkResult reports how much of a sequential batch was applied. When a
// mid-batch item fails, Applied < Requested and already-applied items stay
// applied (no rollback).
type BulkResult struct {
	Requested int `json:"requested"`
	Applied   int `json:"applied"`
}

// CompleteSessionRequest marks a whole batch as having completed a session.
type CompleteSessionRequest struct {
	SessionType string `json:"session_type" validate:"required"`
	Batch       string `json:"batch"`
}

// SessionCompletionResult summarises a cohort session completion run.
type SessionCompletionResult struct {
	TargetUsers          int `json:"target_users"`
	CompletionsInserted  int `json:"completions_inserted"`
	ProgressStageUpserts int `json:"progress_stage_upserts"`
}
