package models

import "time"

// JourneyStage is an ordered milestone in the participant journey.
type JourneyStage struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	StageOrder int       `db:"stage_order" json:"stage_order"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Task belongs to a journey stage and is completed via submissions.
type Task struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	StageID   string    `db:"stage_id" json:"stage_id"`
	TaskOrder int       `db:"task_order" json:"task_order"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ProgressStatus tracks a participant's state within a single stage.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// ParticipantProgress records stage progress, unique per (user_id, stage_id).
type ParticipantProgress struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"user_id"`
	StageID     string         `db:"stage_id" json:"stage_id"`
	Status      ProgressStatus `db:"status" json:"status"`
	StartedAt   *time.Time     `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
}
