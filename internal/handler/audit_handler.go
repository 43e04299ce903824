package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/pkg/response"
)

type auditHistoryService interface {
	History(ctx context.Context, tableName, recordID string, limit int) (*dto.AuditHistoryResponse, error)
}

// AuditHandler exposes the status-change history endpoint.
type AuditHandler struct {
	service auditHistoryService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(svc auditHistoryService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// History godoc
// @Summary Record status history
// @Description Audit trail of a reviewed record, newest first
// @Tags Audit
// @Produce json
// @Param table path string true "Table name"
// @Param record path string true "Record ID"
// @Param limit query int false "Max events (default 50, max 200)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /audit/{table}/{record} [get]
func (h *AuditHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	history, err := h.service.History(c.Request.Context(), c.Param("table"), c.Param("record"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}
