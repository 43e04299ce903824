package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	appErrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
	"github.com/Cheragshah/udyamipmp-api/pkg/response"
)

type reportService interface {
	Catalog() dto.CatalogResponse
	Table(ctx context.Context, req dto.ReportRequest) (*dto.ReportTableResponse, error)
	Chart(ctx context.Context, req dto.ReportRequest) (*dto.ReportChartResponse, error)
}

// ReportHandler exposes the reporting endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Catalog godoc
// @Summary Report source catalog
// @Description Selectable sources and fields for report building
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/catalog [get]
func (h *ReportHandler) Catalog(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Catalog(), nil)
}

// Table godoc
// @Summary Tabular report
// @Description Generate a capped tabular report with selected fields
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.ReportRequest true "Report request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/table [post]
func (h *ReportHandler) Table(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report request"))
		return
	}

	table, err := h.service.Table(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, table, nil)
}

// Chart godoc
// @Summary Chart report
// @Description Group the full result set by status for chart rendering
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.ReportRequest true "Report request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/chart [post]
func (h *ReportHandler) Chart(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report request"))
		return
	}

	chart, err := h.service.Chart(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chart, nil)
}
