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

type sessionLinkService interface {
	CreateLink(ctx context.Context, actorID string, req dto.CreateSessionLinkRequest) (*models.SpecialSessionLink, error)
	ListLinks(ctx context.Context, role models.UserRole) ([]models.SpecialSessionLink, error)
	UpdateLink(ctx context.Context, id string, req dto.UpdateSessionLinkRequest) (*models.SpecialSessionLink, error)
	CompleteLink(ctx context.Context, actorID, id string) (*models.SpecialSessionLink, error)
	DeleteLink(ctx context.Context, actorID, id string) error
}

// SessionHandler exposes special session link endpoints.
type SessionHandler struct {
	service sessionLinkService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(svc sessionLinkService) *SessionHandler {
	return &SessionHandler{service: svc}
}

// Create godoc
// @Summary Create a session link
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionLinkRequest true "Link payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions/links [post]
func (h *SessionHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateSessionLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session link payload"))
		return
	}

	link, err := h.service.CreateLink(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// List godoc
// @Summary List session links
// @Description Participants see active links only; reviewers see everything
// @Tags Sessions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sessions/links [get]
func (h *SessionHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	links, err := h.service.ListLinks(c.Request.Context(), claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, links, nil)
}

// Update godoc
// @Summary Edit a session link
// @Description Apply partial edits to an uncompleted link
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Link ID"
// @Param payload body dto.UpdateSessionLinkRequest true "Edit payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /sessions/links/{id} [patch]
func (h *SessionHandler) Update(c *gin.Context) {
	var req dto.UpdateSessionLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session link payload"))
		return
	}

	link, err := h.service.UpdateLink(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// Complete godoc
// @Summary Complete a session link
// @Description Transition a link into its terminal completed state
// @Tags Sessions
// @Produce json
// @Param id path string true "Link ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /sessions/links/{id}/complete [post]
func (h *SessionHandler) Complete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	link, err := h.service.CompleteLink(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, link, nil)
}

// Delete godoc
// @Summary Delete a session link
// @Description Permanently remove a link. Requires confirm=true.
// @Tags Sessions
// @Produce json
// @Param id path string true "Link ID"
// @Param confirm query bool true "Must be true"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/links/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if c.Query("confirm") != "true" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "deletion is permanent; pass confirm=true to proceed"))
		return
	}

	if err := h.service.DeleteLink(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
