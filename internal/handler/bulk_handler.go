package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	appErrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
	"github.com/Cheragshah/udyamipmp-api/pkg/response"
)

type bulkService interface {
	VerifyTasks(ctx context.Context, actorID string, req dto.BulkVerifyTasksRequest) (*dto.BulkResult, error)
	ApproveDocuments(ctx context.Context, actorID string, req dto.BulkApproveDocumentsRequest) (*dto.BulkResult, error)
	CompleteStages(ctx context.Context, actorID string, req dto.BulkCompleteStagesRequest) (*dto.BulkResult, error)
	CompleteSession(ctx context.Context, actorID string, sessionType models.SessionType, batch string) (*dto.SessionCompletionResult, error)
}

// BulkHandler exposes bulk review action endpoints.
type BulkHandler struct {
	service bulkService
}

// NewBulkHandler constructs handler.
func NewBulkHandler(svc bulkService) *BulkHandler {
	return &BulkHandler{service: svc}
}

// VerifyTasks godoc
// @Summary Bulk verify task submissions
// @Description Verify selected tasks for one participant; the batch stops at the first failure
// @Tags Bulk
// @Accept json
// @Produce json
// @Param payload body dto.BulkVerifyTasksRequest true "Verify request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /bulk/tasks/verify [post]
func (h *BulkHandler) VerifyTasks(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.BulkVerifyTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk verify payload"))
		return
	}

	result, err := h.service.VerifyTasks(c.Request.Context(), claims.UserID, req)
	if err != nil {
		// Partial progress still matters to the caller; attach what was
		// applied before the failure alongside the error payload.
		appErr := appErrors.FromError(err)
		c.Header("Cache-Control", "no-store")
		c.JSON(appErr.Status, gin.H{"error": appErr, "data": result})
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ApproveDocuments godoc
// @Summary Bulk approve documents
// @Description Approve the selected documents in a single statement
// @Tags Bulk
// @Accept json
// @Produce json
// @Param payload body dto.BulkApproveDocumentsRequest true "Approve request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bulk/documents/approve [post]
func (h *BulkHandler) ApproveDocuments(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.BulkApproveDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk approve payload"))
		return
	}

	result, err := h.service.ApproveDocuments(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CompleteStages godoc
// @Summary Bulk complete journey stages
// @Description Mark selected stages completed for one participant
// @Tags Bulk
// @Accept json
// @Produce json
// @Param payload body dto.BulkCompleteStagesRequest true "Complete request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /bulk/stages/complete [post]
func (h *BulkHandler) CompleteStages(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.BulkCompleteStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid bulk complete payload"))
		return
	}

	result, err := h.service.CompleteStages(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CompleteSession godoc
// @Summary Complete a session for a cohort
// @Description Replace prior completions of the session type for every participant in the batch
// @Tags Bulk
// @Accept json
// @Produce json
// @Param payload body dto.CompleteSessionRequest true "Session completion request"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/complete [post]
func (h *BulkHandler) CompleteSession(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session completion payload"))
		return
	}
	sessionType := models.SessionType(req.SessionType)
	switch sessionType {
	case models.SessionOrientation, models.SessionMentorship, models.SessionMasterclass,
		models.SessionEcommerceSetup, models.SessionGraduation:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown session type"))
		return
	}

	result, err := h.service.CompleteSession(c.Request.Context(), claims.UserID, sessionType, req.Batch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
