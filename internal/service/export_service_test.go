package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
	"github.com/Cheragshah/udyamipmp-api/pkg/jobs"
	"github.com/Cheragshah/udyamipmp-api/pkg/storage"
)

type fakeExportStore struct {
	jobs map[string]*models.ExportJob
}

func newFakeExportStore() *fakeExportStore {
	return &fakeExportStore{jobs: map[string]*models.ExportJob{}}
}

func (f *fakeExportStore) Create(_ context.Context, job *models.ExportJob) error {
	if job.ID == "" {
		job.ID = "job-1"
	}
	if job.Status == "" {
		job.Status = models.ExportStatusQueued
	}
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeExportStore) GetByID(_ context.Context, id string) (*models.ExportJob, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeExportStore) Update(_ context.Context, id string, params models.ExportJobUpdate) error {
	job, ok := f.jobs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if params.Status != nil {
		job.Status = *params.Status
	}
	if params.Progress != nil {
		job.Progress = *params.Progress
	}
	if params.ResultURL != nil {
		job.ResultURL = params.ResultURL
	}
	if params.ErrorMessage != nil {
		job.ErrorMessage = params.ErrorMessage
	}
	if params.FinishedAt != nil {
		job.FinishedAt = params.FinishedAt
	}
	return nil
}

func (f *fakeExportStore) ListQueued(_ context.Context, _ int) ([]models.ExportJob, error) {
	out := []models.ExportJob{}
	for _, job := range f.jobs {
		if job.Status == models.ExportStatusQueued {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeExportStore) ListFinishedBefore(_ context.Context, _ time.Time, _ int) ([]models.ExportJob, error) {
	return nil, nil
}

type fakeGenerator struct {
	columns []models.ReportField
	rows    []models.ReportRow
	err     error
}

func (f *fakeGenerator) Generate(_ context.Context, _ dto.ReportRequest) ([]models.ReportField, []models.ReportRow, error) {
	return f.columns, f.rows, f.err
}

func newExportFixture(t *testing.T, generator *fakeGenerator) (*ExportService, *fakeExportStore) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	store := newFakeExportStore()
	svc := NewExportService(ExportServiceParams{
		Reports: generator,
		Store:   store,
		Files:   files,
		Signer:  storage.NewSignedURLSigner("test-secret", time.Hour),
		Metrics: NewMetricsService(),
		Logger:  zap.NewNop(),
		Config:  ExportConfig{APIPrefix: "/api/v1"},
	})
	return svc, store
}

func TestExportServiceQueueValidation(t *testing.T) {
	svc, _ := newExportFixture(t, &fakeGenerator{})
	ctx := context.Background()

	_, err := svc.Queue(ctx, "admin-1", dto.ExportRequest{
		ReportRequest: dto.ReportRequest{Source: models.SourceTrades, Fields: []string{"status"}},
		Format:        "xlsx",
	})
	require.Error(t, err)

	_, err = svc.Queue(ctx, "admin-1", dto.ExportRequest{
		ReportRequest: dto.ReportRequest{Source: "payroll", Fields: []string{"status"}},
		Format:        models.ExportFormatCSV,
	})
	require.Error(t, err)

	_, err = svc.Queue(ctx, "admin-1", dto.ExportRequest{
		ReportRequest: dto.ReportRequest{Source: models.SourceTrades},
		Format:        models.ExportFormatCSV,
	})
	require.Error(t, err)
}

func TestExportServiceProcessFinishesCSV(t *testing.T) {
	generator := &fakeGenerator{
		columns: []models.ReportField{
			{Key: "participant_name", Label: "Participant Name"},
			{Key: "status", Label: "Status"},
		},
		rows: []models.ReportRow{
			{"participant_name": "Asha", "status": "verified"},
			{"participant_name": "Binod", "status": "submitted"},
		},
	}
	svc, store := newExportFixture(t, generator)

	params, err := json.Marshal(models.ExportJobParams{
		Source: models.SourceTaskSubmissions,
		Fields: []string{"participant_name", "status"},
		Format: models.ExportFormatCSV,
	})
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), &models.ExportJob{
		ID:        "job-csv",
		Source:    models.SourceTaskSubmissions,
		Params:    params,
		CreatedBy: "admin-1",
	}))

	require.NoError(t, svc.process(context.Background(), jobs.Job{ID: "job-csv", Type: "export"}))

	job := store.jobs["job-csv"]
	require.Equal(t, models.ExportStatusFinished, job.Status)
	require.Equal(t, 100, job.Progress)
	require.NotNil(t, job.FinishedAt)
	require.NotNil(t, job.ResultURL)
	require.True(t, strings.HasPrefix(*job.ResultURL, "/api/v1/reports/exports/download/"))

	token := strings.TrimPrefix(*job.ResultURL, "/api/v1/reports/exports/download/")
	file, _, err := svc.OpenDownload(token)
	require.NoError(t, err)
	defer file.Close()

	content, err := io.ReadAll(file)
	require.NoError(t, err)
	require.Contains(t, string(content), "Participant Name,Status")
	require.Contains(t, string(content), "Asha,verified")
}

func TestExportServiceProcessFailureIsRecorded(t *testing.T) {
	svc, store := newExportFixture(t, &fakeGenerator{err: errors.New("report blew up")})

	params, err := json.Marshal(models.ExportJobParams{
		Source: models.SourceTrades,
		Fields: []string{"status"},
		Format: models.ExportFormatCSV,
	})
	require.NoError(t, err)
	require.NoError(t, store.Create(context.Background(), &models.ExportJob{ID: "job-bad", Params: params, CreatedBy: "admin-1"}))

	// The handler reports success so the queue does not retry a
	// deterministic failure; the job row carries the error instead.
	require.NoError(t, svc.process(context.Background(), jobs.Job{ID: "job-bad", Type: "export"}))

	job := store.jobs["job-bad"]
	require.Equal(t, models.ExportStatusFailed, job.Status)
	require.NotNil(t, job.ErrorMessage)
	require.Contains(t, *job.ErrorMessage, "report blew up")
}

func TestExportServiceProcessSkipsFinishedJob(t *testing.T) {
	svc, store := newExportFixture(t, &fakeGenerator{})
	store.jobs["done"] = &models.ExportJob{ID: "done", Status: models.ExportStatusFinished}

	require.NoError(t, svc.process(context.Background(), jobs.Job{ID: "done", Type: "export"}))
	require.Equal(t, models.ExportStatusFinished, store.jobs["done"].Status)
}

func TestExportServiceStatusAccessControl(t *testing.T) {
	svc, store := newExportFixture(t, &fakeGenerator{})
	store.jobs["job-1"] = &models.ExportJob{ID: "job-1", Status: models.ExportStatusQueued, CreatedBy: "coach-1"}
	ctx := context.Background()

	resp, err := svc.Status(ctx, "job-1", "coach-1", models.RoleCoach)
	require.NoError(t, err)
	require.Equal(t, models.ExportStatusQueued, resp.Status)

	_, err = svc.Status(ctx, "job-1", "admin-9", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Status(ctx, "job-1", "coach-2", models.RoleCoach)
	require.Error(t, err)
	require.Equal(t, apperrors.ErrForbidden.Code, apperrors.FromError(err).Code)
}

func TestExportServiceOpenDownloadRejectsBadToken(t *testing.T) {
	svc, _ := newExportFixture(t, &fakeGenerator{})

	_, _, err := svc.OpenDownload("not-a-token")
	require.Error(t, err)
	require.Equal(t, apperrors.ErrUnauthorized.Code, apperrors.FromError(err).Code)
}
