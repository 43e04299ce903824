package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

type submissionCounter interface {
	CountByStatus(ctx context.Context, status models.SubmissionStatus) (int, error)
	PendingCountByUser(ctx context.Context) (map[string]int, error)
}

type documentCounter interface {
	CountAwaitingReview(ctx context.Context) (int, error)
	PendingCountByUser(ctx context.Context) (map[string]int, error)
}

type tradeCounter interface {
	CountByStatus(ctx context.Context, status models.TradeStatus) (int, error)
	PendingCountByUser(ctx context.Context) (map[string]int, error)
}

type enrollmentCounter interface {
	CountByStatus(ctx context.Context, status models.EnrollmentStatus) (int, error)
}

type progressCounter interface {
	CountAll(ctx context.Context) (int, error)
	StageProgressByUser(ctx context.Context) (map[string]models.StageProgress, error)
}

type profileLister interface {
	RefsByUser(ctx context.Context) ([]models.ProfileRef, error)
	Count(ctx context.Context) (int, error)
}

type stageLister interface {
	ListActiveStages(ctx context.Context) ([]models.JourneyStage, error)
}

// SummaryServiceConfig tunes summary behaviour.
type SummaryServiceConfig struct {
	CacheTTL time.Duration
}

// SummaryService aggregates pending-review workload across the cohort.
type SummaryService struct {
	submissions submissionCounter
	documents   documentCounter
	trades      tradeCounter
	enrollments enrollmentCounter
	progress    progressCounter
	profiles    profileLister
	stages      stageLister
	cache       *CacheService
	logger      *zap.Logger
	now         func() time.Time
	cfg         SummaryServiceConfig
}

// SummaryServiceParams groups constructor dependencies.
type SummaryServiceParams struct {
	Submissions submissionCounter
	Documents   documentCounter
	Trades      tradeCounter
	Enrollments enrollmentCounter
	Progress    progressCounter
	Profiles    profileLister
	Stages      stageLister
	Cache       *CacheService
	Logger      *zap.Logger
	Config      SummaryServiceConfig
}

// NewSummaryService constructs a SummaryService with sane defaults.
func NewSummaryService(params SummaryServiceParams) *SummaryService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 2 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{
		submissions: params.Submissions,
		documents:   params.Documents,
		trades:      params.Trades,
		enrollments: params.Enrollments,
		progress:    params.Progress,
		profiles:    params.Profiles,
		stages:      params.Stages,
		cache:       params.Cache,
		logger:      logger,
		now:         time.Now,
		cfg:         cfg,
	}
}

// GlobalPending returns the cross-cohort pending rollup. The boolean reports
// cache utilisation. On a fresh-compute failure the last cached value is
// served when one exists, so the dashboard degrades to stale rather than
// empty.
func (s *SummaryService) GlobalPending(ctx context.Context) (*dto.PendingSummaryResponse, bool, error) {
	const cacheKey = "summary:pending:global"
	if cached, hit := s.tryPendingCache(ctx, cacheKey); hit {
		return cached, true, nil
	}

	summary, err := s.composeGlobalPending(ctx)
	if err != nil {
		if stale, hit := s.tryPendingCache(ctx, cacheKey); hit {
			s.logger.Warn("serving stale pending summary after compute failure", zap.Error(err))
			return stale, true, nil
		}
		return nil, false, err
	}

	resp := &dto.PendingSummaryResponse{
		Summary:     *summary,
		Total:       summary.Total(),
		GeneratedAt: s.now().UTC(),
	}
	s.persistCache(ctx, cacheKey, resp)
	return resp, false, nil
}

// Participants returns per-participant rollups sorted by combined pending
// workload, busiest first. The batch filter is applied in memory against the
// profile lookup; the "all" sentinel and an empty batch behave identically.
func (s *SummaryService) Participants(ctx context.Context, batch string) (*dto.ParticipantSummariesResponse, bool, error) {
	cacheKey := fmt.Sprintf("summary:participants:%s", normaliseBatch(batch))
	if cached, hit := s.tryParticipantsCache(ctx, cacheKey); hit {
		return cached, true, nil
	}

	summaries, err := s.composeParticipants(ctx, batch)
	if err != nil {
		if stale, hit := s.tryParticipantsCache(ctx, cacheKey); hit {
			s.logger.Warn("serving stale participant summaries after compute failure", zap.Error(err))
			return stale, true, nil
		}
		return nil, false, err
	}

	resp := &dto.ParticipantSummariesResponse{
		Batch:        normaliseBatch(batch),
		Participants: summaries,
		GeneratedAt:  s.now().UTC(),
	}
	s.persistCache(ctx, cacheKey, resp)
	return resp, false, nil
}

func (s *SummaryService) composeGlobalPending(ctx context.Context) (*models.GlobalPendingSummary, error) {
	pendingSubmissions, err := s.submissions.CountByStatus(ctx, models.SubmissionSubmitted)
	if err != nil {
		return nil, err
	}
	pendingDocuments, err := s.documents.CountAwaitingReview(ctx)
	if err != nil {
		return nil, err
	}
	pendingTrades, err := s.trades.CountByStatus(ctx, models.TradePending)
	if err != nil {
		return nil, err
	}
	pendingEnrollments, err := s.enrollments.CountByStatus(ctx, models.EnrollmentSubmitted)
	if err != nil {
		return nil, err
	}

	participants, err := s.profiles.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeStages, err := s.stages.ListActiveStages(ctx)
	if err != nil {
		return nil, err
	}
	progressRows, err := s.progress.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	// A stage a participant never touched has no progress row, so the
	// untouched count is the full grid minus the rows that exist.
	notStarted := participants*len(activeStages) - progressRows
	if notStarted < 0 {
		notStarted = 0
	}

	return &models.GlobalPendingSummary{
		PendingSubmissions: pendingSubmissions,
		PendingDocuments:   pendingDocuments,
		PendingTrades:      pendingTrades,
		PendingEnrollments: pendingEnrollments,
		StagesNotStarted:   notStarted,
	}, nil
}

func (s *SummaryService) composeParticipants(ctx context.Context, batch string) ([]models.ParticipantSummary, error) {
	refs, err := s.profiles.RefsByUser(ctx)
	if err != nil {
		return nil, err
	}
	pendingTasks, err := s.submissions.PendingCountByUser(ctx)
	if err != nil {
		return nil, err
	}
	pendingDocs, err := s.documents.PendingCountByUser(ctx)
	if err != nil {
		return nil, err
	}
	pendingTrades, err := s.trades.PendingCountByUser(ctx)
	if err != nil {
		return nil, err
	}
	stageProgress, err := s.progress.StageProgressByUser(ctx)
	if err != nil {
		return nil, err
	}
	activeStages, err := s.stages.ListActiveStages(ctx)
	if err != nil {
		return nil, err
	}

	filtered := batch != "" && batch != models.BatchAll
	summaries := make([]models.ParticipantSummary, 0, len(refs))
	for _, ref := range refs {
		if filtered && ref.Batch != batch {
			continue
		}
		progress := stageProgress[ref.UserID]
		summary := models.ParticipantSummary{
			UserID:           ref.UserID,
			FullName:         ref.FullName,
			Batch:            ref.Batch,
			PendingTasks:     pendingTasks[ref.UserID],
			PendingDocuments: pendingDocs[ref.UserID],
			PendingTrades:    pendingTrades[ref.UserID],
			CurrentStage:     currentStage(progress),
			Status:           participantStatus(progress, len(activeStages)),
		}
		summaries = append(summaries, summary)
	}

	// Busiest first; stable so equal workloads keep name order from the
	// profile listing.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalPending() > summaries[j].TotalPending()
	})
	return summaries, nil
}

func (s *SummaryService) tryPendingCache(ctx context.Context, key string) (*dto.PendingSummaryResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	var cached dto.PendingSummaryResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil || !hit {
		return nil, false
	}
	return &cached, true
}

func (s *SummaryService) tryParticipantsCache(ctx context.Context, key string) (*dto.ParticipantSummariesResponse, bool) {
	if s.cache == nil {
		return nil, false
	}
	var cached dto.ParticipantSummariesResponse
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil || !hit {
		return nil, false
	}
	return &cached, true
}

func (s *SummaryService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("summary cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops cached summaries after bulk mutations.
func (s *SummaryService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "summary:*"); err != nil {
		s.logger.Warn("summary cache invalidation failed", zap.Error(err))
	}
}

// currentStage reports the stage a participant is working on: the in-progress
// row when one exists, otherwise the stage after the last completed one. A
// participant with no rows starts at stage 1.
func currentStage(p models.StageProgress) int {
	if p.InProgressOrder > 0 {
		return p.InProgressOrder
	}
	return p.Completed + 1
}

func participantStatus(p models.StageProgress, activeStages int) models.ParticipantStatus {
	switch {
	case activeStages > 0 && p.Completed >= activeStages:
		return models.ParticipantCompleted
	case p.Started > 0:
		return models.ParticipantInProgress
	default:
		return models.ParticipantNotStarted
	}
}

func normaliseBatch(batch string) string {
	if batch == "" {
		return models.BatchAll
	}
	return batch
}
