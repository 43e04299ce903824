package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type submissionBulkRepository interface {
	GetStatus(ctx context.Context, userID, taskID string) (models.SubmissionStatus, error)
	UpsertVerified(ctx context.Context, userID, taskID, verifiedBy string) error
}

type documentBulkRepository interface {
	BulkApprove(ctx context.Context, ids []string, approvedBy string) (int64, error)
}

type progressBulkRepository interface {
	UpsertCompleted(ctx context.Context, userID, stageID string) error
}

type sessionBulkRepository interface {
	DeleteCompletionsByType(ctx context.Context, sessionType models.SessionType, userIDs []string) (int64, error)
	InsertCompletions(ctx context.Context, sessionType models.SessionType, userIDs []string, markedBy string) (int, error)
}

type batchResolver interface {
	UserIDsByBatch(ctx context.Context, batch string) ([]string, error)
}

type stageFinder interface {
	FindStageByName(ctx context.Context, name string) (*models.JourneyStage, error)
}

type auditWriter interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

type summaryInvalidator interface {
	Invalidate(ctx context.Context)
}

// BulkService orchestrates multi-record review actions. Batches run
// sequentially and stop at the first failure; items applied before the
// failure stay applied, and the result reports how far the batch got.
type BulkService struct {
	submissions submissionBulkRepository
	documents   documentBulkRepository
	progress    progressBulkRepository
	sessions    sessionBulkRepository
	profiles    batchResolver
	stages      stageFinder
	audit       auditWriter
	summaries   summaryInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// BulkServiceParams groups constructor dependencies.
type BulkServiceParams struct {
	Submissions submissionBulkRepository
	Documents   documentBulkRepository
	Progress    progressBulkRepository
	Sessions    sessionBulkRepository
	Profiles    batchResolver
	Stages      stageFinder
	Audit       auditWriter
	Summaries   summaryInvalidator
	Validator   *validator.Validate
	Logger      *zap.Logger
}

// NewBulkService constructs a BulkService.
func NewBulkService(params BulkServiceParams) *BulkService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkService{
		submissions: params.Submissions,
		documents:   params.Documents,
		progress:    params.Progress,
		sessions:    params.Sessions,
		profiles:    params.Profiles,
		stages:      params.Stages,
		audit:       params.Audit,
		summaries:   params.Summaries,
		validator:   validate,
		logger:      logger,
	}
}

// VerifyTasks marks the selected tasks verified for one participant. Each
// verification is a single atomic upsert keyed (user_id, task_id); verifying
// an already-verified task is a no-op, while a rejected task refuses the
// action and stops the batch.
func (s *BulkService) VerifyTasks(ctx context.Context, actorID string, req dto.BulkVerifyTasksRequest) (*dto.BulkResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid bulk verify payload")
	}

	result := &dto.BulkResult{Requested: len(req.TaskIDs)}
	for _, taskID := range req.TaskIDs {
		current, err := s.submissions.GetStatus(ctx, req.UserID, taskID)
		if err != nil {
			return result, err
		}
		if current == models.SubmissionRejected {
			return result, apperrors.Clone(apperrors.ErrConflict, fmt.Sprintf("task %s was rejected and cannot be verified", taskID))
		}
		if err := s.submissions.UpsertVerified(ctx, req.UserID, taskID, actorID); err != nil {
			return result, err
		}
		result.Applied++
		s.recordAudit(ctx, "task_submissions", fmt.Sprintf("%s:%s", req.UserID, taskID), models.AuditActionBulkVerify, string(current), string(models.SubmissionVerified), actorID)
	}

	s.invalidateSummaries(ctx)
	return result, nil
}

// ApproveDocuments approves the selected documents in one database
// statement. Applied reflects the rows the statement actually changed.
func (s *BulkService) ApproveDocuments(ctx context.Context, actorID string, req dto.BulkApproveDocumentsRequest) (*dto.BulkResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid bulk approve payload")
	}

	affected, err := s.documents.BulkApprove(ctx, req.DocumentIDs, actorID)
	if err != nil {
		return nil, err
	}
	for _, id := range req.DocumentIDs {
		s.recordAudit(ctx, "documents", id, models.AuditActionBulkApprove, "", string(models.DocumentApproved), actorID)
	}

	s.invalidateSummaries(ctx)
	return &dto.BulkResult{Requested: len(req.DocumentIDs), Applied: int(affected)}, nil
}

// CompleteStages marks the selected stages completed for one participant via
// sequential atomic upserts.
func (s *BulkService) CompleteStages(ctx context.Context, actorID string, req dto.BulkCompleteStagesRequest) (*dto.BulkResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid bulk complete payload")
	}

	result := &dto.BulkResult{Requested: len(req.StageIDs)}
	for _, stageID := range req.StageIDs {
		if err := s.progress.UpsertCompleted(ctx, req.UserID, stageID); err != nil {
			return result, err
		}
		result.Applied++
		s.recordAudit(ctx, "participant_progress", fmt.Sprintf("%s:%s", req.UserID, stageID), models.AuditActionBulkComplete, "", string(models.ProgressCompleted), actorID)
	}

	s.invalidateSummaries(ctx)
	return result, nil
}

// CompleteSession marks a whole batch as having completed a session. Prior
// completions of the same session type are replaced rather than duplicated
// (notes on replaced rows are discarded), and when the session maps to a
// journey stage every targeted participant gets that stage upserted to
// completed.
func (s *BulkService) CompleteSession(ctx context.Context, actorID string, sessionType models.SessionType, batch string) (*dto.SessionCompletionResult, error) {
	userIDs, err := s.profiles.UserIDsByBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	result := &dto.SessionCompletionResult{TargetUsers: len(userIDs)}
	if len(userIDs) == 0 {
		return result, nil
	}

	if _, err := s.sessions.DeleteCompletionsByType(ctx, sessionType, userIDs); err != nil {
		return nil, err
	}
	inserted, err := s.sessions.InsertCompletions(ctx, sessionType, userIDs, actorID)
	if err != nil {
		return nil, err
	}
	result.CompletionsInserted = inserted

	if stageName := models.StageNameForSession(sessionType); stageName != "" {
		stage, err := s.stages.FindStageByName(ctx, stageName)
		if err != nil {
			// Masterclass-style sessions have no stage; a missing mapped
			// stage is logged but does not undo the completions.
			s.logger.Warn("session stage lookup failed", zap.String("stage", stageName), zap.Error(err))
		} else {
			for _, userID := range userIDs {
				if err := s.progress.UpsertCompleted(ctx, userID, stage.ID); err != nil {
					return result, err
				}
				result.ProgressStageUpserts++
			}
		}
	}

	s.recordAudit(ctx, "session_completions", fmt.Sprintf("%s:%s", sessionType, normaliseBatch(batch)), models.AuditActionBulkComplete, "", "completed", actorID)
	s.invalidateSummaries(ctx)
	return result, nil
}

func (s *BulkService) recordAudit(ctx context.Context, table, recordID, action, oldStatus, newStatus, actorID string) {
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{
		TableName: table,
		RecordID:  recordID,
		Action:    action,
		ChangedBy: &actorID,
	}
	if oldStatus != "" {
		entry.OldStatus = &oldStatus
	}
	if newStatus != "" {
		entry.NewStatus = &newStatus
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("audit write failed",
			zap.String("table", table),
			zap.String("record", recordID),
			zap.Error(err))
	}
}

func (s *BulkService) invalidateSummaries(ctx context.Context) {
	if s.summaries != nil {
		s.summaries.Invalidate(ctx)
	}
}
