package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type auditReader interface {
	History(ctx context.Context, tableName, recordID string, limit int) ([]models.AuditEvent, error)
}

// Tables whose status history is exposed through the API. Anything else is
// refused rather than leaked.
var auditedTables = map[string]bool{
	"task_submissions":      true,
	"documents":             true,
	"trades":                true,
	"participant_progress":  true,
	"session_completions":   true,
	"special_session_links": true,
	"enrollment_requests":   true,
}

// AuditService exposes the status-change history of reviewed records.
type AuditService struct {
	repo   auditReader
	logger *zap.Logger
}

// NewAuditService constructs an AuditService.
func NewAuditService(repo auditReader, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// History returns a record's audit trail, newest first. An unknown record
// yields an empty trail, not an error.
func (s *AuditService) History(ctx context.Context, tableName, recordID string, limit int) (*dto.AuditHistoryResponse, error) {
	if tableName == "" || recordID == "" {
		return nil, apperrors.Clone(apperrors.ErrValidation, "table and record id are required")
	}
	if !auditedTables[tableName] {
		return nil, apperrors.Clone(apperrors.ErrValidation, "history is not available for this table")
	}

	events, err := s.repo.History(ctx, tableName, recordID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	return &dto.AuditHistoryResponse{
		TableName: tableName,
		RecordID:  recordID,
		Events:    events,
	}, nil
}
