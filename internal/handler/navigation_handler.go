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

type navigationService interface {
	Resolve(ctx context.Context, role models.UserRole) (*dto.NavigationResponse, error)
}

// NavigationHandler exposes the role navigation endpoint.
type NavigationHandler struct {
	service navigationService
}

// NewNavigationHandler constructs handler.
func NewNavigationHandler(svc navigationService) *NavigationHandler {
	return &NavigationHandler{service: svc}
}

// Resolve godoc
// @Summary Navigation links for the caller's role
// @Description Ordered links and default landing path
// @Tags Navigation
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /navigation [get]
func (h *NavigationHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	nav, err := h.service.Resolve(c.Request.Context(), claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nav, nil)
}
