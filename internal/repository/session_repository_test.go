package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
	apperrors "github.com/Cheragshah/udyamipmp-api/pkg/errors"
)

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSessionRepositoryReplaceCompletions(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	users := []string{"user-1", "user-2"}
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session_completions WHERE session_type = $1 AND user_id = ANY($2)")).
		WithArgs("orientation", pq.Array(users)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteCompletionsByType(context.Background(), models.SessionOrientation, users)
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session_completions")).
		WithArgs(
			sqlmock.AnyArg(), "user-1", "orientation", "admin-1",
			sqlmock.AnyArg(), "user-2", "orientation", "admin-1",
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	inserted, err := repo.InsertCompletions(context.Background(), models.SessionOrientation, users, "admin-1")
	require.NoError(t, err)
	require.Equal(t, 2, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryInsertCompletionsEmpty(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	inserted, err := repo.InsertCompletions(context.Background(), models.SessionGraduation, nil, "admin-1")
	require.NoError(t, err)
	require.Zero(t, inserted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryMarkLinkCompletedIsTerminal(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET is_completed = true, is_active = false")).
		WithArgs("link-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.MarkLinkCompleted(context.Background(), "link-1"))

	// Second attempt matches no rows: the transition is one-way.
	mock.ExpectExec(regexp.QuoteMeta("SET is_completed = true, is_active = false")).
		WithArgs("link-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.MarkLinkCompleted(context.Background(), "link-1")
	require.ErrorIs(t, err, apperrors.ErrLinkCompleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryUpdateLinkRefusesCompleted(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE special_session_links")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	link := &models.SpecialSessionLink{ID: "link-1", Title: "Demo Day", LinkURL: "https://meet.example.com/x", IsActive: true}
	err := repo.UpdateLink(context.Background(), link)
	require.ErrorIs(t, err, apperrors.ErrLinkCompleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryDeleteLinkNotFound(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM special_session_links WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteLink(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrLinkNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
