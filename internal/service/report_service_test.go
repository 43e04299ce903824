package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
	"github.com/Cheragshah/udyamipmp-api/pkg/format"
)

type fakeReportProfiles struct {
	refs   []models.ProfileRef
	rows   []models.ProfileReportRow
	counts map[string]int
	err    error
}

func (f *fakeReportProfiles) RefsByUser(_ context.Context) ([]models.ProfileRef, error) {
	return f.refs, f.err
}

func (f *fakeReportProfiles) ListForReport(_ context.Context, _ models.ReportFilter) ([]models.ProfileReportRow, error) {
	return f.rows, f.err
}

func (f *fakeReportProfiles) BatchCounts(_ context.Context, _ models.ReportFilter) (map[string]int, error) {
	return f.counts, f.err
}

type fakeSubmissionSource struct {
	rows   []models.SubmissionReportRow
	counts map[string]int
	filter models.ReportFilter
}

func (f *fakeSubmissionSource) ListForReport(_ context.Context, filter models.ReportFilter) ([]models.SubmissionReportRow, error) {
	f.filter = filter
	return f.rows, nil
}

func (f *fakeSubmissionSource) StatusCounts(_ context.Context, _ models.ReportFilter) (map[string]int, error) {
	return f.counts, nil
}

type fakeAttendanceSource struct {
	rows []models.AttendanceReportRow
}

func (f *fakeAttendanceSource) ListForReport(_ context.Context, _ models.ReportFilter) ([]models.AttendanceReportRow, error) {
	return f.rows, nil
}

func (f *fakeAttendanceSource) StatusCounts(_ context.Context, _ models.ReportFilter) (map[string]int, error) {
	return nil, nil
}

func newReportFixture(cap int) (*ReportService, *fakeSubmissionSource) {
	submitted := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	submissions := &fakeSubmissionSource{
		rows: []models.SubmissionReportRow{
			{ID: "s1", UserID: "u1", TaskTitle: "Open a trading account", Status: "submitted", SubmittedAt: &submitted},
			{ID: "s2", UserID: "u2", TaskTitle: "Complete KYC", Status: "verified", SubmittedAt: &submitted},
			{ID: "s3", UserID: "u1", TaskTitle: "First trade journal", Status: "submitted", SubmittedAt: &submitted},
		},
		counts: map[string]int{"submitted": 2, "verified": 1},
	}
	profiles := &fakeReportProfiles{
		refs: []models.ProfileRef{
			{UserID: "u1", FullName: "Asha", Batch: "7"},
			{UserID: "u2", FullName: "Binod", Batch: "8"},
		},
	}
	svc := NewReportService(ReportServiceParams{
		Profiles:    profiles,
		Submissions: submissions,
		Attendance: &fakeAttendanceSource{rows: []models.AttendanceReportRow{
			{UserID: "u1", SessionType: "orientation", CompletedAt: submitted},
		}},
		Logger: zap.NewNop(),
		Config: ReportServiceConfig{TableRowCap: cap},
	})
	return svc, submissions
}

func TestReportServiceColumnsFollowCatalogOrder(t *testing.T) {
	svc, _ := newReportFixture(100)

	columns, rows, err := svc.Generate(context.Background(), dto.ReportRequest{
		Source: models.SourceTaskSubmissions,
		Fields: []string{"status", "task_title", "participant_name"},
	})
	require.NoError(t, err)
	require.Len(t, columns, 3)
	require.Equal(t, "participant_name", columns[0].Key)
	require.Equal(t, "task_title", columns[1].Key)
	require.Equal(t, "status", columns[2].Key)

	require.Len(t, rows, 3)
	require.Equal(t, "Asha", rows[0]["participant_name"])
	require.NotContains(t, rows[0], "submitted_at")
}

func TestReportServiceRejectsBadRequests(t *testing.T) {
	svc, _ := newReportFixture(100)
	ctx := context.Background()

	_, _, err := svc.Generate(ctx, dto.ReportRequest{Source: "payroll", Fields: []string{"status"}})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)

	_, _, err = svc.Generate(ctx, dto.ReportRequest{Source: models.SourceTaskSubmissions})
	require.Error(t, err)

	_, _, err = svc.Generate(ctx, dto.ReportRequest{Source: models.SourceTaskSubmissions, Fields: []string{"salary"}})
	require.Error(t, err)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)
	_, _, err = svc.Generate(ctx, dto.ReportRequest{
		Source:   models.SourceTaskSubmissions,
		Fields:   []string{"status"},
		DateFrom: &from,
		DateTo:   &to,
	})
	require.Error(t, err)
}

func TestReportServiceBatchNarrowing(t *testing.T) {
	svc, _ := newReportFixture(100)

	_, rows, err := svc.Generate(context.Background(), dto.ReportRequest{
		Source: models.SourceTaskSubmissions,
		Fields: []string{"participant_name", "batch_number"},
		Batch:  "8",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Binod", rows[0]["participant_name"])

	_, all, err := svc.Generate(context.Background(), dto.ReportRequest{
		Source: models.SourceTaskSubmissions,
		Fields: []string{"participant_name"},
		Batch:  models.BatchAll,
	})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestReportServiceTableCapKeepsExactTotal(t *testing.T) {
	svc, _ := newReportFixture(2)

	resp, err := svc.Table(context.Background(), dto.ReportRequest{
		Source: models.SourceTaskSubmissions,
		Fields: []string{"task_title"},
	})
	require.NoError(t, err)
	require.True(t, resp.Truncated)
	require.Equal(t, 3, resp.TotalRows)
	require.Len(t, resp.Rows, 2)
	require.Contains(t, resp.Notice, "first 2 of 3")
}

func TestReportServiceTableUnderCap(t *testing.T) {
	svc, _ := newReportFixture(100)

	resp, err := svc.Table(context.Background(), dto.ReportRequest{
		Source: models.SourceTaskSubmissions,
		Fields: []string{"task_title"},
	})
	require.NoError(t, err)
	require.False(t, resp.Truncated)
	require.Empty(t, resp.Notice)
	require.Equal(t, 3, resp.TotalRows)
}

func TestReportServiceChartBuckets(t *testing.T) {
	svc, _ := newReportFixture(100)

	resp, err := svc.Chart(context.Background(), dto.ReportRequest{Source: models.SourceTaskSubmissions})
	require.NoError(t, err)
	require.Len(t, resp.Buckets, 2)
	require.Equal(t, dto.ChartBucket{Status: "submitted", Label: "Submitted", Count: 2}, resp.Buckets[0])
	require.Equal(t, dto.ChartBucket{Status: "verified", Label: "Verified", Count: 1}, resp.Buckets[1])
}

func TestReportServiceChartRecomputesForBatch(t *testing.T) {
	svc, _ := newReportFixture(100)

	resp, err := svc.Chart(context.Background(), dto.ReportRequest{
		Source: models.SourceTaskSubmissions,
		Batch:  "7",
	})
	require.NoError(t, err)
	// Only Asha's two submitted rows survive the batch filter.
	require.Len(t, resp.Buckets, 1)
	require.Equal(t, "submitted", resp.Buckets[0].Status)
	require.Equal(t, 2, resp.Buckets[0].Count)
}

func TestReportServiceProfilesHonourBatchFilter(t *testing.T) {
	svc, _ := newReportFixture(100)
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	svc.profiles = &fakeReportProfiles{
		refs: []models.ProfileRef{
			{UserID: "u1", FullName: "Asha", Batch: "7"},
			{UserID: "u2", FullName: "Binod", Batch: "8"},
		},
		rows: []models.ProfileReportRow{
			{FullName: "Asha", Email: "asha@example.com", BatchNumber: "7", CreatedAt: created},
			{FullName: "Binod", Email: "binod@example.com", BatchNumber: "8", CreatedAt: created},
		},
		counts: map[string]int{"7": 1, "8": 1},
	}

	_, rows, err := svc.Generate(context.Background(), dto.ReportRequest{
		Source: models.SourceProfiles,
		Fields: []string{"full_name", "batch_number"},
		Batch:  "7",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Asha", rows[0]["full_name"])

	chart, err := svc.Chart(context.Background(), dto.ReportRequest{
		Source: models.SourceProfiles,
		Batch:  "7",
	})
	require.NoError(t, err)
	require.Len(t, chart.Buckets, 1)
	require.Equal(t, "7", chart.Buckets[0].Status)
	require.Equal(t, 1, chart.Buckets[0].Count)
}

func TestReportServiceChartLabelsFollowLanguage(t *testing.T) {
	svc, _ := newReportFixture(100)
	svc.formatter = format.New("hi")

	resp, err := svc.Chart(context.Background(), dto.ReportRequest{Source: models.SourceTaskSubmissions})
	require.NoError(t, err)
	require.Equal(t, "जमा किया गया", resp.Buckets[0].Label)
	require.Equal(t, "सत्यापित", resp.Buckets[1].Label)
}

func TestReportServiceProfileSourceError(t *testing.T) {
	svc, _ := newReportFixture(100)
	svc.profiles = &fakeReportProfiles{err: errors.New("db down")}

	_, _, err := svc.Generate(context.Background(), dto.ReportRequest{
		Source: models.SourceTaskSubmissions,
		Fields: []string{"status"},
	})
	require.Error(t, err)
}

func TestReportServiceCatalogListsAllSources(t *testing.T) {
	svc, _ := newReportFixture(100)

	catalog := svc.Catalog()
	require.Len(t, catalog.Sources, len(models.AllReportSources()))
	require.Equal(t, models.SourceProfiles, catalog.Sources[0].Source)
	require.NotEmpty(t, catalog.Sources[0].Fields)
}
