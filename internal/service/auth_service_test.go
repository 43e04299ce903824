package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

type fakeAuthRepo struct {
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	revokedAll    []string
	revokedIDs    []string
	passwordHash  string
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:         map[string]*models.User{},
		refreshTokens: map[string]*models.RefreshToken{},
	}
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAuthRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) UpdateLastLogin(context.Context, string, time.Time) error { return nil }

func (f *fakeAuthRepo) UpdatePassword(_ context.Context, id, hash string, _ time.Time) error {
	f.passwordHash = hash
	return nil
}

func (f *fakeAuthRepo) RevokeUserRefreshTokens(_ context.Context, userID string) error {
	f.revokedAll = append(f.revokedAll, userID)
	return nil
}

func (f *fakeAuthRepo) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	f.refreshTokens[token.Token] = token
	return nil
}

func (f *fakeAuthRepo) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := f.refreshTokens[token]
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	return stored, nil
}

func (f *fakeAuthRepo) RevokeRefreshToken(_ context.Context, id string, _ time.Time) error {
	f.revokedIDs = append(f.revokedIDs, id)
	return nil
}

func seedUser(repo *fakeAuthRepo, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		ID:           "u-1",
		Email:        "asha@example.com",
		PasswordHash: string(hash),
		FullName:     "Asha Devi",
		Role:         models.RoleCoach,
		Active:       true,
	}
	repo.users[user.ID] = user
	return user
}

func newAuthFixture() (*AuthService, *fakeAuthRepo) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "udyamipmp-api",
	})
	return svc, repo
}

func TestAuthServiceLoginIssuesTokens(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(repo, "secret123")

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, models.RoleCoach, resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, models.RoleCoach, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(repo, "secret123")

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrInvalidCredentials.Code, apperrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmailMasksExistence(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrInvalidCredentials.Code, apperrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	svc, repo := newAuthFixture()
	user := seedUser(repo, "secret123")
	user.Active = false

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	require.Equal(t, apperrors.ErrInactiveAccount.Code, apperrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsTampering(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(repo, "secret123")

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	require.Error(t, err)

	other := NewAuthService(repo, nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "different-secret",
		AccessTokenExpiry: time.Hour,
	})
	_, err = other.ValidateToken(resp.AccessToken)
	require.Error(t, err)
}

func TestAuthServiceLogoutRevokesOwnToken(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(repo, "secret123")

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken, "u-1"))
	require.Len(t, repo.revokedIDs, 1)

	err = svc.Logout(context.Background(), resp.RefreshToken, "someone-else")
	require.Equal(t, apperrors.ErrForbidden.Code, apperrors.FromError(err).Code)
}

func TestAuthServiceChangePassword(t *testing.T) {
	svc, repo := newAuthFixture()
	seedUser(repo, "secret123")

	err := svc.ChangePassword(context.Background(), "u-1", models.ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "longenough",
	})
	require.Equal(t, apperrors.ErrForbidden.Code, apperrors.FromError(err).Code)

	err = svc.ChangePassword(context.Background(), "u-1", models.ChangePasswordRequest{
		OldPassword: "secret123",
		NewPassword: "longenough",
	})
	require.NoError(t, err)
	require.NotEmpty(t, repo.passwordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.passwordHash), []byte("longenough")))
	require.Equal(t, []string{"u-1"}, repo.revokedAll)
}
