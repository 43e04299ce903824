package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type sessionLinkRepository interface {
	CreateLink(ctx context.Context, link *models.SpecialSessionLink) error
	GetLink(ctx context.Context, id string) (*models.SpecialSessionLink, error)
	ListLinks(ctx context.Context, activeOnly bool) ([]models.SpecialSessionLink, error)
	UpdateLink(ctx context.Context, link *models.SpecialSessionLink) error
	MarkLinkCompleted(ctx context.Context, id string) error
	DeleteLink(ctx context.Context, id string) error
}

type cohortCompleter interface {
	CompleteSession(ctx context.Context, actorID string, sessionType models.SessionType, batch string) (*dto.SessionCompletionResult, error)
}

// SessionService manages special session links and their lifecycle. Links
// toggle between active and inactive freely until completed; completion is
// terminal and records attendance for the link's target cohort.
type SessionService struct {
	repo      sessionLinkRepository
	audit     auditWriter
	cohort    cohortCompleter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionLinkRepository, audit auditWriter, cohort cohortCompleter, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, audit: audit, cohort: cohort, validator: validate, logger: logger}
}

// CreateLink registers a new link, active by default.
func (s *SessionService) CreateLink(ctx context.Context, actorID string, req dto.CreateSessionLinkRequest) (*models.SpecialSessionLink, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid session link payload")
	}
	if !validSessionType(req.SessionType) {
		return nil, apperrors.Clone(apperrors.ErrValidation, "unknown session type")
	}

	link := &models.SpecialSessionLink{
		Title:       req.Title,
		LinkURL:     req.LinkURL,
		SessionType: req.SessionType,
		TargetBatch: req.TargetBatch,
		IsActive:    true,
		CreatedBy:   &actorID,
	}
	if err := s.repo.CreateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// ListLinks returns links newest first. Participants only see active,
// uncompleted links; reviewers see everything.
func (s *SessionService) ListLinks(ctx context.Context, role models.UserRole) ([]models.SpecialSessionLink, error) {
	activeOnly := role == models.RoleParticipant
	return s.repo.ListLinks(ctx, activeOnly)
}

// UpdateLink applies partial edits to an uncompleted link.
func (s *SessionService) UpdateLink(ctx context.Context, id string, req dto.UpdateSessionLinkRequest) (*models.SpecialSessionLink, error) {
	link, err := s.repo.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.IsCompleted {
		return nil, apperrors.ErrLinkCompleted
	}

	if req.Title != nil {
		link.Title = *req.Title
	}
	if req.LinkURL != nil {
		link.LinkURL = *req.LinkURL
	}
	if req.TargetBatch != nil {
		link.TargetBatch = req.TargetBatch
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// CompleteLink transitions a link into its terminal state. Before the flag
// flips, attendance is recorded for the link's session type across its
// target batch (or the whole cohort when no batch is set).
func (s *SessionService) CompleteLink(ctx context.Context, actorID, id string) (*models.SpecialSessionLink, error) {
	link, err := s.repo.GetLink(ctx, id)
	if err != nil {
		return nil, err
	}
	if link.IsCompleted {
		return nil, apperrors.ErrLinkCompleted
	}

	if s.cohort != nil {
		batch := ""
		if link.TargetBatch != nil {
			batch = *link.TargetBatch
		}
		result, err := s.cohort.CompleteSession(ctx, actorID, link.SessionType, batch)
		if err != nil {
			return nil, err
		}
		s.logger.Info("session link cohort completion recorded",
			zap.String("link", id),
			zap.String("session_type", string(link.SessionType)),
			zap.Int("completions", result.CompletionsInserted))
	}

	if err := s.repo.MarkLinkCompleted(ctx, id); err != nil {
		return nil, err
	}
	s.recordLinkAudit(ctx, id, models.AuditActionStatusChange, "active", "completed", actorID)
	return s.repo.GetLink(ctx, id)
}

// DeleteLink permanently removes a link. Destructive: callers must pass an
// explicit confirmation flag at the API boundary before this runs.
func (s *SessionService) DeleteLink(ctx context.Context, actorID, id string) error {
	link, err := s.repo.GetLink(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteLink(ctx, id); err != nil {
		return err
	}
	status := "inactive"
	if link.IsActive {
		status = "active"
	}
	if link.IsCompleted {
		status = "completed"
	}
	s.recordLinkAudit(ctx, id, models.AuditActionLinkDelete, status, "deleted", actorID)
	return nil
}

func (s *SessionService) recordLinkAudit(ctx context.Context, id, action, oldStatus, newStatus, actorID string) {
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{
		TableName: "special_session_links",
		RecordID:  id,
		Action:    action,
		OldStatus: &oldStatus,
		NewStatus: &newStatus,
		ChangedBy: &actorID,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("session link audit write failed", zap.String("link", id), zap.Error(err))
	}
}

func validSessionType(t models.SessionType) bool {
	switch t {
	case models.SessionOrientation, models.SessionMentorship, models.SessionMasterclass,
		models.SessionEcommerceSetup, models.SessionGraduation:
		return true
	}
	return false
}
