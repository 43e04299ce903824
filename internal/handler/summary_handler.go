package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/middleware"
	"github.com/Cheragshah/udyamipmp-api/pkg/response"
)

type summaryService interface {
	GlobalPending(ctx context.Context) (*dto.PendingSummaryResponse, bool, error)
	Participants(ctx context.Context, batch string) (*dto.ParticipantSummariesResponse, bool, error)
}

// SummaryHandler exposes the dashboard aggregation endpoints.
type SummaryHandler struct {
	service summaryService
}

// NewSummaryHandler constructs handler.
func NewSummaryHandler(svc summaryService) *SummaryHandler {
	return &SummaryHandler{service: svc}
}

// GlobalPending godoc
// @Summary Global pending review summary
// @Description Cross-cohort counts of work awaiting review
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *SummaryHandler) GlobalPending(c *gin.Context) {
	summary, cached, err := h.service.GlobalPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, summary, nil, middleware.ExtractMeta(c))
}

// Participants godoc
// @Summary Per-participant workload summaries
// @Description Pending workload per participant, busiest first
// @Tags Dashboard
// @Produce json
// @Param batch query string false "Batch number, or 'all'"
// @Success 200 {object} response.Envelope
// @Router /dashboard/participants [get]
func (h *SummaryHandler) Participants(c *gin.Context) {
	summaries, cached, err := h.service.Participants(c.Request.Context(), c.Query("batch"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, summaries, nil, middleware.ExtractMeta(c))
}
