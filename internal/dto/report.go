package dto

import (
	"time"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

// ReportRequest selects a source, output fields and optional filters.
type ReportRequest struct {
	Source   models.ReportSource `json:"source" validate:"required"`
	Fields   []string            `json:"fields"`
	Status   string              `json:"status,omitempty"`
	Batch    string              `json:"batch,omitempty"`
	DateFrom *time.Time          `json:"date_from,omitempty"`
	DateTo   *time.Time          `json:"date_to,omitempty"`
}

// ReportTableResponse is the capped tabular rendering of a generated report.
type ReportTableResponse struct {
	Source    models.ReportSource  `json:"source"`
	Columns   []models.ReportField `json:"columns"`
	Rows      []models.ReportRow   `json:"rows"`
	TotalRows int                  `json:"total_rows"`
	Truncated bool                 `json:"truncated"`
	Notice    string               `json:"notice,omitempty"`
}

// ChartBucket counts rows sharing a status value.
type ChartBucket struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// ReportChartResponse groups the full result set by status for chart rendering.
type ReportChartResponse struct {
	Source  models.ReportSource `json:"source"`
	Buckets []ChartBucket       `json:"buckets"`
}

// ExportRequest asks for an asynchronous export of a report.
type ExportRequest struct {
	ReportRequest
	Format models.ExportFormat `json:"format" validate:"required"`
}

// ExportJobResponse acknowledges a queued export.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportStatusResponse reports export job state to clients.
type ExportStatusResponse struct {
	ID        string              `json:"id"`
	Status    models.ExportStatus `json:"status"`
	Progress  int                 `json:"progress"`
	ResultURL *string             `json:"result_url,omitempty"`
	Error     *string             `json:"error,omitempty"`
}

// SourceCatalog describes the selectable fields of one report source.
type SourceCatalog struct {
	Source     models.ReportSource  `json:"source"`
	Fields     []models.ReportField `json:"fields"`
	DateColumn string               `json:"date_column"`
}

// CatalogResponse lists the catalogs of every report source.
type CatalogResponse struct {
	Sources []SourceCatalog `json:"sources"`
}
