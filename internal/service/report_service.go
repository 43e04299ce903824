package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
	"github.com/Cheragshah/udyamipmp-api/pkg/format"
)

type reportProfileSource interface {
	RefsByUser(ctx context.Context) ([]models.ProfileRef, error)
	ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.ProfileReportRow, error)
	BatchCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error)
}

type submissionSource interface {
	ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.SubmissionReportRow, error)
	StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error)
}

type documentSource interface {
	ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.DocumentReportRow, error)
	StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error)
}

type tradeSource interface {
	ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.TradeReportRow, error)
	StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error)
}

type attendanceSource interface {
	ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.AttendanceReportRow, error)
	StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error)
}

type progressSource interface {
	ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.ProgressReportRow, error)
	StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error)
}

type ecommerceSource interface {
	ListForReport(ctx context.Context, filter models.ReportFilter) ([]models.EcommerceReportRow, error)
	StatusCounts(ctx context.Context, filter models.ReportFilter) (map[string]int, error)
}

// ReportServiceConfig tunes report generation.
type ReportServiceConfig struct {
	TableRowCap int
	Language    string
}

// ReportService projects operational collections into tabular reports with
// field selection, filtering and locale-aware value rendering.
type ReportService struct {
	profiles    reportProfileSource
	submissions submissionSource
	documents   documentSource
	trades      tradeSource
	attendance  attendanceSource
	progress    progressSource
	ecommerce   ecommerceSource
	formatter   *format.Formatter
	logger      *zap.Logger
	cfg         ReportServiceConfig
}

// ReportServiceParams groups constructor dependencies.
type ReportServiceParams struct {
	Profiles    reportProfileSource
	Submissions submissionSource
	Documents   documentSource
	Trades      tradeSource
	Attendance  attendanceSource
	Progress    progressSource
	Ecommerce   ecommerceSource
	Logger      *zap.Logger
	Config      ReportServiceConfig
}

// NewReportService constructs a ReportService with sane defaults.
func NewReportService(params ReportServiceParams) *ReportService {
	cfg := params.Config
	if cfg.TableRowCap <= 0 {
		cfg.TableRowCap = 100
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		profiles:    params.Profiles,
		submissions: params.Submissions,
		documents:   params.Documents,
		trades:      params.Trades,
		attendance:  params.Attendance,
		progress:    params.Progress,
		ecommerce:   params.Ecommerce,
		formatter:   format.New(cfg.Language),
		logger:      logger,
		cfg:         cfg,
	}
}

// Catalog lists the selectable fields of every report source.
func (s *ReportService) Catalog() dto.CatalogResponse {
	sources := models.AllReportSources()
	catalogs := make([]dto.SourceCatalog, 0, len(sources))
	for _, source := range sources {
		catalogs = append(catalogs, dto.SourceCatalog{
			Source:     source,
			Fields:     models.FieldCatalog(source),
			DateColumn: models.DateColumn(source),
		})
	}
	return dto.CatalogResponse{Sources: catalogs}
}

// Table renders the capped tabular view of a report. The full result set is
// still generated so the row count is exact; only the returned page is
// truncated.
func (s *ReportService) Table(ctx context.Context, req dto.ReportRequest) (*dto.ReportTableResponse, error) {
	columns, rows, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	total := len(rows)
	truncated := total > s.cfg.TableRowCap
	if truncated {
		rows = rows[:s.cfg.TableRowCap]
	}

	resp := &dto.ReportTableResponse{
		Source:    req.Source,
		Columns:   columns,
		Rows:      rows,
		TotalRows: total,
		Truncated: truncated,
	}
	if truncated {
		resp.Notice = fmt.Sprintf("Showing first %d of %d rows. Export the report to download the full result.", s.cfg.TableRowCap, total)
	}
	return resp, nil
}

// Chart buckets the full (uncapped) result set by status. Profiles carry no
// status, so their chart buckets by batch instead.
func (s *ReportService) Chart(ctx context.Context, req dto.ReportRequest) (*dto.ReportChartResponse, error) {
	if !models.ValidReportSource(req.Source) {
		return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown report source %q", req.Source))
	}

	filter := models.ReportFilter{DateFrom: req.DateFrom, DateTo: req.DateTo}
	var (
		counts map[string]int
		err    error
	)
	switch req.Source {
	case models.SourceProfiles:
		counts, err = s.profiles.BatchCounts(ctx, filter)
	case models.SourceTaskSubmissions:
		counts, err = s.submissions.StatusCounts(ctx, filter)
	case models.SourceDocuments:
		counts, err = s.documents.StatusCounts(ctx, filter)
	case models.SourceTrades:
		counts, err = s.trades.StatusCounts(ctx, filter)
	case models.SourceAttendance:
		counts, err = s.attendance.StatusCounts(ctx, filter)
	case models.SourceProgress:
		counts, err = s.progress.StatusCounts(ctx, filter)
	case models.SourceEcommerce:
		counts, err = s.ecommerce.StatusCounts(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	// Batch narrowing happens against profiles, which a grouped count cannot
	// honour; recompute from projected rows when a batch is requested.
	if req.Batch != "" && req.Batch != models.BatchAll {
		return s.chartFromRows(ctx, req)
	}

	buckets := make([]dto.ChartBucket, 0, len(counts))
	for status, count := range counts {
		buckets = append(buckets, dto.ChartBucket{Status: status, Label: s.formatter.StatusLabel(status), Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Status < buckets[j].Status })
	return &dto.ReportChartResponse{Source: req.Source, Buckets: buckets}, nil
}

func (s *ReportService) chartFromRows(ctx context.Context, req dto.ReportRequest) (*dto.ReportChartResponse, error) {
	statusReq := req
	statusReq.Fields = []string{"status"}
	switch req.Source {
	case models.SourceAttendance:
		statusReq.Fields = []string{"session_type"}
	case models.SourceProfiles:
		statusReq.Fields = []string{"batch_number"}
	}
	_, rows, err := s.Generate(ctx, statusReq)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	key := statusReq.Fields[0]
	for _, row := range rows {
		counts[row[key]]++
	}
	buckets := make([]dto.ChartBucket, 0, len(counts))
	for status, count := range counts {
		buckets = append(buckets, dto.ChartBucket{Status: status, Label: s.formatter.StatusLabel(status), Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Status < buckets[j].Status })
	return &dto.ReportChartResponse{Source: req.Source, Buckets: buckets}, nil
}

// Generate produces the full, uncapped projection of a report request. Rows
// come back with the selected fields only, in catalog order, with values
// rendered through the locale formatter.
func (s *ReportService) Generate(ctx context.Context, req dto.ReportRequest) ([]models.ReportField, []models.ReportRow, error) {
	if !models.ValidReportSource(req.Source) {
		return nil, nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown report source %q", req.Source))
	}
	columns, err := s.resolveColumns(req.Source, req.Fields)
	if err != nil {
		return nil, nil, err
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		return nil, nil, apperrors.Clone(apperrors.ErrValidation, "date_to must not precede date_from")
	}

	refs, err := s.profiles.RefsByUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	refByUser := make(map[string]models.ProfileRef, len(refs))
	for _, ref := range refs {
		refByUser[ref.UserID] = ref
	}

	filter := models.ReportFilter{Status: req.Status, DateFrom: req.DateFrom, DateTo: req.DateTo}
	raw, err := s.loadRows(ctx, req.Source, filter, refByUser)
	if err != nil {
		return nil, nil, err
	}

	narrowed := raw
	if req.Batch != "" && req.Batch != models.BatchAll {
		narrowed = narrowed[:0]
		for _, row := range raw {
			if row.batch == req.Batch {
				narrowed = append(narrowed, row)
			}
		}
	}

	rows := make([]models.ReportRow, 0, len(narrowed))
	for _, row := range narrowed {
		projected := make(models.ReportRow, len(columns))
		for _, col := range columns {
			projected[col.Key] = row.values[col.Key]
		}
		rows = append(rows, projected)
	}
	return columns, rows, nil
}

// resolveColumns validates the requested field keys against the source
// catalog and returns them in catalog order regardless of request order.
func (s *ReportService) resolveColumns(source models.ReportSource, fields []string) ([]models.ReportField, error) {
	if len(fields) == 0 {
		return nil, apperrors.Clone(apperrors.ErrValidation, "at least one field must be selected")
	}
	catalog := models.FieldCatalog(source)
	known := make(map[string]bool, len(catalog))
	for _, field := range catalog {
		known[field.Key] = true
	}
	requested := make(map[string]bool, len(fields))
	for _, key := range fields {
		if !known[key] {
			return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("field %q is not available on source %q", key, source))
		}
		requested[key] = true
	}
	columns := make([]models.ReportField, 0, len(requested))
	for _, field := range catalog {
		if requested[field.Key] {
			columns = append(columns, field)
		}
	}
	return columns, nil
}

// projectedRow carries the fully rendered field values of one record plus the
// batch used for in-memory narrowing.
type projectedRow struct {
	batch  string
	values map[string]string
}

func (s *ReportService) loadRows(ctx context.Context, source models.ReportSource, filter models.ReportFilter, refs map[string]models.ProfileRef) ([]projectedRow, error) {
	switch source {
	case models.SourceProfiles:
		rows, err := s.profiles.ListForReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]projectedRow, 0, len(rows))
		for _, r := range rows {
			out = append(out, projectedRow{batch: r.BatchNumber, values: map[string]string{
				"full_name":    r.FullName,
				"email":        r.Email,
				"batch_number": r.BatchNumber,
				"coach_name":   r.CoachName,
				"created_at":   s.formatter.Date(r.CreatedAt),
			}})
		}
		return out, nil

	case models.SourceTaskSubmissions:
		rows, err := s.submissions.ListForReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]projectedRow, 0, len(rows))
		for _, r := range rows {
			ref := refs[r.UserID]
			out = append(out, projectedRow{batch: ref.Batch, values: map[string]string{
				"participant_name": ref.FullName,
				"batch_number":     ref.Batch,
				"task_title":       r.TaskTitle,
				"status":           r.Status,
				"submitted_at":     s.formatOptionalDate(r.SubmittedAt),
				"verified_at":      s.formatOptionalDate(r.VerifiedAt),
			}})
		}
		return out, nil

	case models.SourceDocuments:
		rows, err := s.documents.ListForReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]projectedRow, 0, len(rows))
		for _, r := range rows {
			ref := refs[r.UserID]
			out = append(out, projectedRow{batch: ref.Batch, values: map[string]string{
				"participant_name": ref.FullName,
				"batch_number":     ref.Batch,
				"document_type":    r.DocumentType,
				"status":           r.Status,
				"created_at":       s.formatter.Date(r.CreatedAt),
			}})
		}
		return out, nil

	case models.SourceTrades:
		rows, err := s.trades.ListForReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]projectedRow, 0, len(rows))
		for _, r := range rows {
			ref := refs[r.UserID]
			out = append(out, projectedRow{batch: ref.Batch, values: map[string]string{
				"participant_name": ref.FullName,
				"batch_number":     ref.Batch,
				"amount":           s.formatter.Currency(r.Amount, r.Currency),
				"currency":         r.Currency,
				"status":           r.Status,
				"trade_date":       s.formatter.Date(r.TradeDate),
			}})
		}
		return out, nil

	case models.SourceAttendance:
		rows, err := s.attendance.ListForReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]projectedRow, 0, len(rows))
		for _, r := range rows {
			ref := refs[r.UserID]
			markedBy := ""
			if r.MarkedBy != nil {
				if marker, ok := refs[*r.MarkedBy]; ok {
					markedBy = marker.FullName
				} else {
					markedBy = "System"
				}
			}
			out = append(out, projectedRow{batch: ref.Batch, values: map[string]string{
				"participant_name": ref.FullName,
				"batch_number":     ref.Batch,
				"session_type":     r.SessionType,
				"marked_by":        markedBy,
				"completed_at":     s.formatter.DateTime(r.CompletedAt),
			}})
		}
		return out, nil

	case models.SourceProgress:
		rows, err := s.progress.ListForReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]projectedRow, 0, len(rows))
		for _, r := range rows {
			ref := refs[r.UserID]
			out = append(out, projectedRow{batch: ref.Batch, values: map[string]string{
				"participant_name": ref.FullName,
				"batch_number":     ref.Batch,
				"stage_name":       r.StageName,
				"status":           r.Status,
				"started_at":       s.formatOptionalDate(r.StartedAt),
				"completed_at":     s.formatOptionalDate(r.CompletedAt),
			}})
		}
		return out, nil

	case models.SourceEcommerce:
		rows, err := s.ecommerce.ListForReport(ctx, filter)
		if err != nil {
			return nil, err
		}
		out := make([]projectedRow, 0, len(rows))
		for _, r := range rows {
			ref := refs[r.UserID]
			out = append(out, projectedRow{batch: ref.Batch, values: map[string]string{
				"participant_name": ref.FullName,
				"batch_number":     ref.Batch,
				"platform":         r.Platform,
				"status":           r.Status,
				"date":             s.formatter.Date(r.Date),
			}})
		}
		return out, nil
	}
	return nil, apperrors.Clone(apperrors.ErrValidation, fmt.Sprintf("unknown report source %q", source))
}

func (s *ReportService) formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return s.formatter.Date(*t)
}
