package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type fakeSubmissionBulk struct {
	statuses map[string]models.SubmissionStatus
	upserted []string
	failOn   string
}

func (f *fakeSubmissionBulk) GetStatus(_ context.Context, userID, taskID string) (models.SubmissionStatus, error) {
	return f.statuses[fmt.Sprintf("%s:%s", userID, taskID)], nil
}

func (f *fakeSubmissionBulk) UpsertVerified(_ context.Context, userID, taskID, _ string) error {
	if taskID == f.failOn {
		return errors.New("upsert failed")
	}
	f.upserted = append(f.upserted, fmt.Sprintf("%s:%s", userID, taskID))
	return nil
}

type fakeDocumentBulk struct {
	affected int64
	calls    int
	lastIDs  []string
}

func (f *fakeDocumentBulk) BulkApprove(_ context.Context, ids []string, _ string) (int64, error) {
	f.calls++
	f.lastIDs = ids
	return f.affected, nil
}

type fakeProgressBulk struct {
	upserted []string
	failOn   string
}

func (f *fakeProgressBulk) UpsertCompleted(_ context.Context, userID, stageID string) error {
	if stageID == f.failOn {
		return errors.New("upsert failed")
	}
	f.upserted = append(f.upserted, fmt.Sprintf("%s:%s", userID, stageID))
	return nil
}

type fakeSessionBulk struct {
	deleted  int64
	inserted int
}

func (f *fakeSessionBulk) DeleteCompletionsByType(_ context.Context, _ models.SessionType, userIDs []string) (int64, error) {
	return f.deleted, nil
}

func (f *fakeSessionBulk) InsertCompletions(_ context.Context, _ models.SessionType, userIDs []string, _ string) (int, error) {
	f.inserted = len(userIDs)
	return len(userIDs), nil
}

type fakeBatchResolver struct {
	users map[string][]string
}

func (f *fakeBatchResolver) UserIDsByBatch(_ context.Context, batch string) ([]string, error) {
	if batch == "" || batch == models.BatchAll {
		all := []string{}
		for _, ids := range f.users {
			all = append(all, ids...)
		}
		return all, nil
	}
	return f.users[batch], nil
}

type fakeStageFinder struct {
	stages map[string]*models.JourneyStage
}

func (f *fakeStageFinder) FindStageByName(_ context.Context, name string) (*models.JourneyStage, error) {
	stage, ok := f.stages[name]
	if !ok {
		return nil, apperrors.ErrStageNotFound
	}
	return stage, nil
}

type fakeAuditWriter struct {
	entries []models.AuditLog
	err     error
}

func (f *fakeAuditWriter) Create(_ context.Context, entry *models.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, *entry)
	return nil
}

type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) Invalidate(_ context.Context) {
	f.calls++
}

func TestBulkServiceVerifyTasksStopsOnRejected(t *testing.T) {
	submissions := &fakeSubmissionBulk{statuses: map[string]models.SubmissionStatus{
		"u1:t1": models.SubmissionSubmitted,
		"u1:t2": models.SubmissionRejected,
		"u1:t3": models.SubmissionSubmitted,
	}}
	audit := &fakeAuditWriter{}
	svc := NewBulkService(BulkServiceParams{
		Submissions: submissions,
		Audit:       audit,
		Logger:      zap.NewNop(),
	})

	result, err := svc.VerifyTasks(context.Background(), "coach-1", dto.BulkVerifyTasksRequest{
		UserID:  "u1",
		TaskIDs: []string{"t1", "t2", "t3"},
	})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrConflict.Code, apperrors.FromError(err).Code)

	// t1 was applied before the rejected task stopped the batch; t3 never ran.
	require.Equal(t, 3, result.Requested)
	require.Equal(t, 1, result.Applied)
	require.Equal(t, []string{"u1:t1"}, submissions.upserted)
	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditActionBulkVerify, audit.entries[0].Action)
}

func TestBulkServiceVerifyTasksIdempotentOnVerified(t *testing.T) {
	submissions := &fakeSubmissionBulk{statuses: map[string]models.SubmissionStatus{
		"u1:t1": models.SubmissionVerified,
	}}
	invalidator := &fakeInvalidator{}
	svc := NewBulkService(BulkServiceParams{
		Submissions: submissions,
		Summaries:   invalidator,
		Logger:      zap.NewNop(),
	})

	result, err := svc.VerifyTasks(context.Background(), "coach-1", dto.BulkVerifyTasksRequest{
		UserID:  "u1",
		TaskIDs: []string{"t1"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Applied)
	require.Equal(t, 1, invalidator.calls)
}

func TestBulkServiceVerifyTasksRejectsEmptyPayload(t *testing.T) {
	svc := NewBulkService(BulkServiceParams{Logger: zap.NewNop()})

	_, err := svc.VerifyTasks(context.Background(), "coach-1", dto.BulkVerifyTasksRequest{UserID: "u1"})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}

func TestBulkServiceApproveDocumentsSingleStatement(t *testing.T) {
	documents := &fakeDocumentBulk{affected: 2}
	audit := &fakeAuditWriter{}
	svc := NewBulkService(BulkServiceParams{
		Documents: documents,
		Audit:     audit,
		Logger:    zap.NewNop(),
	})

	result, err := svc.ApproveDocuments(context.Background(), "admin-1", dto.BulkApproveDocumentsRequest{
		DocumentIDs: []string{"d1", "d2", "d3"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, documents.calls)
	require.Equal(t, []string{"d1", "d2", "d3"}, documents.lastIDs)
	// One row was already approved, so the statement touched only two.
	require.Equal(t, 3, result.Requested)
	require.Equal(t, 2, result.Applied)
	require.Len(t, audit.entries, 3)
}

func TestBulkServiceCompleteStagesStopsOnFailure(t *testing.T) {
	progress := &fakeProgressBulk{failOn: "st2"}
	svc := NewBulkService(BulkServiceParams{
		Progress: progress,
		Logger:   zap.NewNop(),
	})

	result, err := svc.CompleteStages(context.Background(), "admin-1", dto.BulkCompleteStagesRequest{
		UserID:   "u1",
		StageIDs: []string{"st1", "st2", "st3"},
	})
	require.Error(t, err)
	require.Equal(t, 1, result.Applied)
	require.Equal(t, []string{"u1:st1"}, progress.upserted)
}

func TestBulkServiceCompleteSessionUpsertsMappedStage(t *testing.T) {
	progress := &fakeProgressBulk{}
	sessions := &fakeSessionBulk{deleted: 1}
	audit := &fakeAuditWriter{}
	svc := NewBulkService(BulkServiceParams{
		Progress: progress,
		Sessions: sessions,
		Profiles: &fakeBatchResolver{users: map[string][]string{"7": {"u1", "u2"}}},
		Stages: &fakeStageFinder{stages: map[string]*models.JourneyStage{
			"Orientation": {ID: "st-orient", Name: "Orientation", StageOrder: 1},
		}},
		Audit:  audit,
		Logger: zap.NewNop(),
	})

	result, err := svc.CompleteSession(context.Background(), "admin-1", models.SessionOrientation, "7")
	require.NoError(t, err)
	require.Equal(t, 2, result.TargetUsers)
	require.Equal(t, 2, result.CompletionsInserted)
	require.Equal(t, 2, result.ProgressStageUpserts)
	require.ElementsMatch(t, []string{"u1:st-orient", "u2:st-orient"}, progress.upserted)
	require.Len(t, audit.entries, 1)
	require.Equal(t, "session_completions", audit.entries[0].TableName)
}

func TestBulkServiceCompleteSessionWithoutStageMapping(t *testing.T) {
	progress := &fakeProgressBulk{}
	svc := NewBulkService(BulkServiceParams{
		Progress: progress,
		Sessions: &fakeSessionBulk{},
		Profiles: &fakeBatchResolver{users: map[string][]string{"7": {"u1"}}},
		Stages:   &fakeStageFinder{},
		Logger:   zap.NewNop(),
	})

	// Masterclass advances no journey stage.
	result, err := svc.CompleteSession(context.Background(), "admin-1", models.SessionMasterclass, "7")
	require.NoError(t, err)
	require.Equal(t, 1, result.CompletionsInserted)
	require.Equal(t, 0, result.ProgressStageUpserts)
	require.Empty(t, progress.upserted)
}

func TestBulkServiceCompleteSessionMissingStageKeepsCompletions(t *testing.T) {
	svc := NewBulkService(BulkServiceParams{
		Progress: &fakeProgressBulk{},
		Sessions: &fakeSessionBulk{},
		Profiles: &fakeBatchResolver{users: map[string][]string{"7": {"u1"}}},
		Stages:   &fakeStageFinder{},
		Logger:   zap.NewNop(),
	})

	result, err := svc.CompleteSession(context.Background(), "admin-1", models.SessionGraduation, "7")
	require.NoError(t, err)
	require.Equal(t, 1, result.CompletionsInserted)
	require.Equal(t, 0, result.ProgressStageUpserts)
}

func TestBulkServiceCompleteSessionEmptyCohort(t *testing.T) {
	sessions := &fakeSessionBulk{}
	svc := NewBulkService(BulkServiceParams{
		Sessions: sessions,
		Profiles: &fakeBatchResolver{users: map[string][]string{}},
		Logger:   zap.NewNop(),
	})

	result, err := svc.CompleteSession(context.Background(), "admin-1", models.SessionOrientation, "9")
	require.NoError(t, err)
	require.Equal(t, 0, result.TargetUsers)
	require.Equal(t, 0, sessions.inserted)
}
