package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
	"github.com/Cheragshah/udyamipmp-api/pkg/response"
)

type profileService interface {
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, int, error)
}

// ProfileHandler exposes participant listing endpoints.
type ProfileHandler struct {
	service profileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(svc profileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// List godoc
// @Summary List participants
// @Description Paginated participant listing with batch, coach and search filters
// @Tags Participants
// @Produce json
// @Param batch query string false "Batch number, or 'all'"
// @Param coachId query string false "Assigned coach ID"
// @Param search query string false "Name or email search"
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20)"
// @Param sortBy query string false "Sort column"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /participants [get]
func (h *ProfileHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	filter := models.ProfileFilter{
		Batch:     c.Query("batch"),
		CoachID:   c.Query("coachId"),
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	profiles, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	pagination := &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	}
	response.JSON(c, http.StatusOK, profiles, pagination)
}
