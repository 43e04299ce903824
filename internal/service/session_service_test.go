package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type fakeSessionLinkRepo struct {
	links      map[string]*models.SpecialSessionLink
	activeOnly bool
	deleted    []string
}

func newFakeSessionLinkRepo() *fakeSessionLinkRepo {
	return &fakeSessionLinkRepo{links: map[string]*models.SpecialSessionLink{}}
}

func (f *fakeSessionLinkRepo) CreateLink(_ context.Context, link *models.SpecialSessionLink) error {
	if link.ID == "" {
		link.ID = "link-1"
	}
	copied := *link
	f.links[link.ID] = &copied
	return nil
}

func (f *fakeSessionLinkRepo) GetLink(_ context.Context, id string) (*models.SpecialSessionLink, error) {
	link, ok := f.links[id]
	if !ok {
		return nil, apperrors.ErrLinkNotFound
	}
	copied := *link
	return &copied, nil
}

func (f *fakeSessionLinkRepo) ListLinks(_ context.Context, activeOnly bool) ([]models.SpecialSessionLink, error) {
	f.activeOnly = activeOnly
	out := []models.SpecialSessionLink{}
	for _, link := range f.links {
		if activeOnly && (!link.IsActive || link.IsCompleted) {
			continue
		}
		out = append(out, *link)
	}
	return out, nil
}

func (f *fakeSessionLinkRepo) UpdateLink(_ context.Context, link *models.SpecialSessionLink) error {
	stored, ok := f.links[link.ID]
	if !ok {
		return apperrors.ErrLinkNotFound
	}
	if stored.IsCompleted {
		return apperrors.ErrLinkCompleted
	}
	copied := *link
	f.links[link.ID] = &copied
	return nil
}

func (f *fakeSessionLinkRepo) MarkLinkCompleted(_ context.Context, id string) error {
	stored, ok := f.links[id]
	if !ok {
		return apperrors.ErrLinkNotFound
	}
	if stored.IsCompleted {
		return apperrors.ErrLinkCompleted
	}
	stored.IsCompleted = true
	stored.IsActive = false
	return nil
}

func (f *fakeSessionLinkRepo) DeleteLink(_ context.Context, id string) error {
	if _, ok := f.links[id]; !ok {
		return apperrors.ErrLinkNotFound
	}
	delete(f.links, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newSessionFixture() (*SessionService, *fakeSessionLinkRepo, *fakeAuditWriter) {
	repo := newFakeSessionLinkRepo()
	audit := &fakeAuditWriter{}
	svc := NewSessionService(repo, audit, nil, nil, zap.NewNop())
	return svc, repo, audit
}

func TestSessionServiceCreateLink(t *testing.T) {
	svc, repo, _ := newSessionFixture()

	link, err := svc.CreateLink(context.Background(), "admin-1", dto.CreateSessionLinkRequest{
		Title:       "Orientation kickoff",
		LinkURL:     "https://meet.example.com/orientation",
		SessionType: models.SessionOrientation,
	})
	require.NoError(t, err)
	require.True(t, link.IsActive)
	require.False(t, link.IsCompleted)
	require.Equal(t, "admin-1", *link.CreatedBy)
	require.Contains(t, repo.links, link.ID)
}

func TestSessionServiceCreateLinkValidation(t *testing.T) {
	svc, _, _ := newSessionFixture()
	ctx := context.Background()

	_, err := svc.CreateLink(ctx, "admin-1", dto.CreateSessionLinkRequest{
		LinkURL:     "https://meet.example.com/x",
		SessionType: models.SessionOrientation,
	})
	require.Error(t, err)

	_, err = svc.CreateLink(ctx, "admin-1", dto.CreateSessionLinkRequest{
		Title:       "Weird",
		LinkURL:     "https://meet.example.com/x",
		SessionType: "hackathon",
	})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}

func TestSessionServiceListLinksRoleVisibility(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.links["a"] = &models.SpecialSessionLink{ID: "a", IsActive: true}
	repo.links["b"] = &models.SpecialSessionLink{ID: "b", IsActive: false}

	links, err := svc.ListLinks(context.Background(), models.RoleParticipant)
	require.NoError(t, err)
	require.True(t, repo.activeOnly)
	require.Len(t, links, 1)

	links, err = svc.ListLinks(context.Background(), models.RoleAdmin)
	require.NoError(t, err)
	require.False(t, repo.activeOnly)
	require.Len(t, links, 2)
}

func TestSessionServiceUpdateRefusesCompleted(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.links["a"] = &models.SpecialSessionLink{ID: "a", Title: "Old", IsCompleted: true}

	title := "New"
	_, err := svc.UpdateLink(context.Background(), "a", dto.UpdateSessionLinkRequest{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrLinkCompleted)
	require.Equal(t, "Old", repo.links["a"].Title)
}

func TestSessionServiceUpdateAppliesPartialEdits(t *testing.T) {
	svc, repo, _ := newSessionFixture()
	repo.links["a"] = &models.SpecialSessionLink{ID: "a", Title: "Old", LinkURL: "https://old", IsActive: true}

	inactive := false
	updated, err := svc.UpdateLink(context.Background(), "a", dto.UpdateSessionLinkRequest{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, updated.IsActive)
	require.Equal(t, "Old", updated.Title)
}

type fakeCohortCompleter struct {
	lastType  models.SessionType
	lastBatch string
	calls     int
	err       error
}

func (f *fakeCohortCompleter) CompleteSession(_ context.Context, _ string, sessionType models.SessionType, batch string) (*dto.SessionCompletionResult, error) {
	f.calls++
	f.lastType = sessionType
	f.lastBatch = batch
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SessionCompletionResult{TargetUsers: 4, CompletionsInserted: 4}, nil
}

func TestSessionServiceCompleteLinkRecordsCohortAttendance(t *testing.T) {
	repo := newFakeSessionLinkRepo()
	audit := &fakeAuditWriter{}
	cohort := &fakeCohortCompleter{}
	svc := NewSessionService(repo, audit, cohort, nil, zap.NewNop())

	batch := "7"
	repo.links["a"] = &models.SpecialSessionLink{
		ID:          "a",
		SessionType: models.SessionMasterclass,
		TargetBatch: &batch,
		IsActive:    true,
	}

	link, err := svc.CompleteLink(context.Background(), "admin-1", "a")
	require.NoError(t, err)
	require.True(t, link.IsCompleted)
	require.Equal(t, 1, cohort.calls)
	require.Equal(t, models.SessionMasterclass, cohort.lastType)
	require.Equal(t, "7", cohort.lastBatch)
}

func TestSessionServiceCompleteLinkKeepsLinkOpenOnCohortFailure(t *testing.T) {
	repo := newFakeSessionLinkRepo()
	cohort := &fakeCohortCompleter{err: apperrors.ErrInternal}
	svc := NewSessionService(repo, &fakeAuditWriter{}, cohort, nil, zap.NewNop())

	repo.links["a"] = &models.SpecialSessionLink{ID: "a", SessionType: models.SessionOrientation, IsActive: true}

	_, err := svc.CompleteLink(context.Background(), "admin-1", "a")
	require.Error(t, err)
	require.False(t, repo.links["a"].IsCompleted)
}

func TestSessionServiceCompleteLinkIsTerminal(t *testing.T) {
	svc, repo, audit := newSessionFixture()
	repo.links["a"] = &models.SpecialSessionLink{ID: "a", IsActive: true}

	link, err := svc.CompleteLink(context.Background(), "admin-1", "a")
	require.NoError(t, err)
	require.True(t, link.IsCompleted)
	require.False(t, link.IsActive)
	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditActionStatusChange, audit.entries[0].Action)

	_, err = svc.CompleteLink(context.Background(), "admin-1", "a")
	require.ErrorIs(t, err, apperrors.ErrLinkCompleted)
}

func TestSessionServiceDeleteLinkAudits(t *testing.T) {
	svc, repo, audit := newSessionFixture()
	repo.links["a"] = &models.SpecialSessionLink{ID: "a", IsActive: true}

	require.NoError(t, svc.DeleteLink(context.Background(), "admin-1", "a"))
	require.Equal(t, []string{"a"}, repo.deleted)
	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditActionLinkDelete, audit.entries[0].Action)
	require.Equal(t, "active", *audit.entries[0].OldStatus)
	require.Equal(t, "deleted", *audit.entries[0].NewStatus)

	err := svc.DeleteLink(context.Background(), "admin-1", "a")
	require.ErrorIs(t, err, apperrors.ErrLinkNotFound)
}
