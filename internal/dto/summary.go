package dto

import (
	"time"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// PendingSummaryResponse carries the global pending rollup.
type PendingSummaryResponse struct {
	Summary     models.GlobalPendingSummary `json:"summary"`
	Total       int                         `json:"total"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// ParticipantSummariesResponse lists per-participant rollups, busiest first.
type ParticipantSummariesResponse struct {
	Batch        string                      `json:"batch,omitempty"`
	Participants []models.ParticipantSummary `json:"participants"`
	GeneratedAt  time.Time                   `json:"generated_at"`
}
