package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
	"github.com/Cheragshah/udyamipmp-api/pkg/export"
	"github.com/Cheragshah/udyamipmp-api/pkg/jobs"
	"github.com/Cheragshah/udyamipmp-api/pkg/storage"
)

type reportGenerator interface {
	Generate(ctx context.Context, req dto.ReportRequest) ([]models.ReportField, []models.ReportRow, error)
}

type exportJobStore interface {
	Create(ctx context.Context, job *models.ExportJob) error
	GetByID(ctx context.Context, id string) (*models.ExportJob, error)
	Update(ctx context.Context, id string, params models.ExportJobUpdate) error
	ListQueued(ctx context.Context, limit int) ([]models.ExportJob, error)
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ExportJob, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix   string
	ResultTTL   time.Duration
	Workers     int
	MaxRetries  int
	RecoverOnly int
}

// ExportService runs asynchronous report exports: it queues jobs, replays
// the stored report request through the generator, renders CSV or PDF, and
// publishes a signed download URL.
type ExportService struct {
	reports reportGenerator
	store   exportJobStore
	files   fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	metrics *MetricsService
	queue   *jobs.Queue
	logger  *zap.Logger
	now     func() time.Time
	cfg     ExportConfig
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Reports reportGenerator
	Store   exportJobStore
	Files   fileStorage
	CSV     csvRenderer
	PDF     pdfRenderer
	Signer  *storage.SignedURLSigner
	Metrics *MetricsService
	Logger  *zap.Logger
	Config  ExportConfig
}

// NewExportService constructs an ExportService and its worker queue.
func NewExportService(params ExportServiceParams) *ExportService {
	cfg := params.Config
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RecoverOnly <= 0 {
		cfg.RecoverOnly = 20
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	csv := params.CSV
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	pdf := params.PDF
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}

	s := &ExportService{
		reports: params.Reports,
		store:   params.Store,
		files:   params.Files,
		csv:     csv,
		pdf:     pdf,
		signer:  params.Signer,
		metrics: params.Metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
	s.queue = jobs.NewQueue("report-exports", s.process, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the worker pool and requeues jobs left over from a previous
// run.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	queued, err := s.store.ListQueued(ctx, s.cfg.RecoverOnly)
	if err != nil {
		s.logger.Warn("export job recovery failed", zap.Error(err))
		return
	}
	for _, job := range queued {
		if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "export"}); err != nil {
			s.logger.Warn("export job requeue failed", zap.String("job", job.ID), zap.Error(err))
		}
	}
}

// Stop drains the worker pool.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Queue persists a new export job and hands it to the worker pool.
func (s *ExportService) Queue(ctx context.Context, actorID string, req dto.ExportRequest) (*dto.ExportJobResponse, error) {
	if req.Format != models.ExportFormatCSV && req.Format != models.ExportFormatPDF {
		return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}
	if !models.ValidReportSource(req.Source) {
		return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown report source %q", req.Source))
	}
	if len(req.Fields) == 0 {
		return nil, apperrors.Clone(apperrors.ErrValidation, "at least one field must be selected")
	}

	params, err := json.Marshal(models.ExportJobParams{
		Source:   req.Source,
		Fields:   req.Fields,
		Status:   req.Status,
		Batch:    req.Batch,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Format:   req.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal export params: %w", err)
	}

	job := &models.ExportJob{
		Source:    req.Source,
		Params:    params,
		CreatedBy: actorID,
	}
	if err := s.store.Create(ctx, job); err != nil {
		return nil, err
	}
	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "export"}); err != nil {
		s.logger.Warn("export enqueue failed, job stays queued for recovery", zap.String("job", job.ID), zap.Error(err))
	}
	return &dto.ExportJobResponse{ID: job.ID, Status: job.Status, Progress: job.Progress}, nil
}

// Status reports job progress. Only the job's creator or an admin may look.
func (s *ExportService) Status(ctx context.Context, jobID, callerID string, role models.UserRole) (*dto.ExportStatusResponse, error) {
	job, err := s.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != callerID && role != models.RoleAdmin {
		return nil, apperrors.Clone(apperrors.ErrForbidden, "export belongs to another user")
	}
	return &dto.ExportStatusResponse{
		ID:        job.ID,
		Status:    job.Status,
		Progress:  job.Progress,
		ResultURL: job.ResultURL,
		Error:     job.ErrorMessage,
	}, nil
}

// OpenDownload validates a signed token and opens the referenced file.
func (s *ExportService) OpenDownload(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrUnauthorized.Code, apperrors.ErrUnauthorized.Status, "invalid download token")
	}
	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrNotFound.Code, apperrors.ErrNotFound.Status, "export file not found")
	}
	return file, relPath, nil
}

// Cleanup deletes finished job files past the result TTL.
func (s *ExportService) Cleanup(ctx context.Context) {
	cutoff := s.now().UTC().Add(-s.cfg.ResultTTL)
	if _, err := s.store.ListFinishedBefore(ctx, cutoff, 0); err != nil {
		s.logger.Warn("stale export listing failed", zap.Error(err))
	}
	deleted, err := s.files.CleanupOlderThan(s.cfg.ResultTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(deleted) > 0 {
		s.logger.Info("expired export files removed", zap.Int("count", len(deleted)))
	}
}

func (s *ExportService) process(ctx context.Context, job jobs.Job) error {
	stored, err := s.store.GetByID(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", job.ID, err)
	}
	if stored.Status == models.ExportStatusFinished {
		return nil
	}

	processing := models.ExportStatusProcessing
	progress := 10
	if err := s.store.Update(ctx, stored.ID, models.ExportJobUpdate{Status: &processing, Progress: &progress}); err != nil {
		return err
	}

	var params models.ExportJobParams
	if err := json.Unmarshal(stored.Params, &params); err != nil {
		return s.fail(ctx, stored.ID, fmt.Errorf("decode export params: %w", err))
	}

	columns, rows, err := s.reports.Generate(ctx, dto.ReportRequest{
		Source:   params.Source,
		Fields:   params.Fields,
		Status:   params.Status,
		Batch:    params.Batch,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
	})
	if err != nil {
		return s.fail(ctx, stored.ID, err)
	}

	dataset := export.Dataset{
		Columns: make([]export.Column, 0, len(columns)),
		Rows:    make([]map[string]string, 0, len(rows)),
	}
	for _, col := range columns {
		dataset.Columns = append(dataset.Columns, export.Column{Key: col.Key, Label: col.Label})
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, row)
	}

	var payload []byte
	switch params.Format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, exportTitle(params.Source))
	default:
		err = fmt.Errorf("unsupported format %s", params.Format)
	}
	if err != nil {
		return s.fail(ctx, stored.ID, err)
	}

	filename := export.Filename(string(params.Source), string(params.Format), s.now().UTC())
	relPath, err := s.files.Save(filename, payload)
	if err != nil {
		return s.fail(ctx, stored.ID, err)
	}

	token, _, err := s.signer.Generate(stored.ID, relPath)
	if err != nil {
		return s.fail(ctx, stored.ID, err)
	}
	resultURL := fmt.Sprintf("%s/reports/exports/download/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token)

	finished := models.ExportStatusFinished
	done := 100
	finishedAt := s.now().UTC()
	if err := s.store.Update(ctx, stored.ID, models.ExportJobUpdate{
		Status:     &finished,
		Progress:   &done,
		ResultURL:  &resultURL,
		FinishedAt: &finishedAt,
	}); err != nil {
		return err
	}
	s.metrics.RecordExportJob(string(finished))
	s.logger.Info("export finished", zap.String("job", stored.ID), zap.String("file", relPath), zap.Int("rows", len(rows)))
	return nil
}

// fail records the terminal failure on the job row. It returns nil so the
// queue does not retry requests that will fail the same way again.
func (s *ExportService) fail(ctx context.Context, jobID string, cause error) error {
	failed := models.ExportStatusFailed
	message := cause.Error()
	finishedAt := s.now().UTC()
	if err := s.store.Update(ctx, jobID, models.ExportJobUpdate{
		Status:       &failed,
		ErrorMessage: &message,
		FinishedAt:   &finishedAt,
	}); err != nil {
		s.logger.Error("export failure update failed", zap.String("job", jobID), zap.Error(err))
	}
	s.metrics.RecordExportJob(string(failed))
	s.logger.Warn("export failed", zap.String("job", jobID), zap.Error(cause))
	return nil
}

func exportTitle(source models.ReportSource) string {
	return fmt.Sprintf("%s report", strings.ReplaceAll(string(source), "_", " "))
}
