package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/dto"
	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type navLinkLister interface {
	ListByRole(ctx context.Context, role models.UserRole) ([]models.NavLink, error)
}

// NavigationServiceConfig tunes navigation resolution.
type NavigationServiceConfig struct {
	DefaultLanding string
}

// NavigationService resolves the visible navigation links and landing page
// for a role. When the database yields nothing usable it falls back to a
// static per-role table so the UI never renders an empty shell.
type NavigationService struct {
	repo   navLinkLister
	logger *zap.Logger
	cfg    NavigationServiceConfig
}

// NewNavigationService constructs a NavigationService.
func NewNavigationService(repo navLinkLister, logger *zap.Logger, cfg NavigationServiceConfig) *NavigationService {
	if cfg.DefaultLanding == "" {
		cfg.DefaultLanding = "/dashboard"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationService{repo: repo, logger: logger, cfg: cfg}
}

// Resolve returns the ordered links and default path for a role.
func (s *NavigationService) Resolve(ctx context.Context, role models.UserRole) (*dto.NavigationResponse, error) {
	if role != models.RoleAdmin && role != models.RoleCoach && role != models.RoleParticipant {
		return nil, apperrors.Clone(apperrors.ErrValidation, "unknown role")
	}

	links, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		s.logger.Warn("nav link lookup failed, using fallback", zap.String("role", string(role)), zap.Error(err))
		links = nil
	}
	fallback := len(links) == 0
	if fallback {
		links = fallbackLinks(role)
	}

	defaultPath := s.cfg.DefaultLanding
	for _, link := range links {
		if link.IsDefault {
			defaultPath = link.Path
			break
		}
	}

	return &dto.NavigationResponse{
		Role:        role,
		Links:       links,
		DefaultPath: defaultPath,
		Fallback:    fallback,
	}, nil
}

// fallbackLinks is the static navigation used when no rows are configured.
func fallbackLinks(role models.UserRole) []models.NavLink {
	switch role {
	case models.RoleAdmin:
		return []models.NavLink{
			{Role: role, Label: "Dashboard", Path: "/admin/dashboard", SortOrder: 1, IsVisible: true, IsDefault: true},
			{Role: role, Label: "Participants", Path: "/admin/participants", SortOrder: 2, IsVisible: true},
			{Role: role, Label: "Reports", Path: "/admin/reports", SortOrder: 3, IsVisible: true},
			{Role: role, Label: "Sessions", Path: "/admin/sessions", SortOrder: 4, IsVisible: true},
		}
	case models.RoleCoach:
		return []models.NavLink{
			{Role: role, Label: "Dashboard", Path: "/coach/dashboard", SortOrder: 1, IsVisible: true, IsDefault: true},
			{Role: role, Label: "Participants", Path: "/coach/participants", SortOrder: 2, IsVisible: true},
			{Role: role, Label: "Reviews", Path: "/coach/reviews", SortOrder: 3, IsVisible: true},
		}
	case models.RoleParticipant:
		return []models.NavLink{
			{Role: role, Label: "My Journey", Path: "/journey", SortOrder: 1, IsVisible: true, IsDefault: true},
			{Role: role, Label: "Tasks", Path: "/tasks", SortOrder: 2, IsVisible: true},
			{Role: role, Label: "Documents", Path: "/documents", SortOrder: 3, IsVisible: true},
			{Role: role, Label: "Sessions", Path: "/sessions", SortOrder: 4, IsVisible: true},
		}
	default:
		return nil
	}
}
