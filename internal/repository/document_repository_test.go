package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newDocumentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestDocumentRepositoryBulkApproveSingleStatement(t *testing.T) {
	db, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	ids := []string{"doc-1", "doc-2", "doc-3"}
	mock.ExpectExec(regexp.QuoteMeta("review_notes = $3")).
		WithArgs("approved", "coach-1", "Approved via bulk action", pq.Array(ids)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := repo.BulkApprove(context.Background(), ids, "coach-1")
	require.NoError(t, err)
	require.EqualValues(t, 3, affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryCountAwaitingReview(t *testing.T) {
	db, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM documents WHERE status IN ($1, $2)")).
		WithArgs("pending", "submitted").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.CountAwaitingReview(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryPendingCountByUser(t *testing.T) {
	db, mock, cleanup := newDocumentRepoMock(t)
	defer cleanup()
	repo := NewDocumentRepository(db)

	rows := sqlmock.NewRows([]string{"user_id", "count"}).
		AddRow("user-1", 2).
		AddRow("user-2", 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, COUNT(*) FROM documents WHERE status IN ($1, $2) GROUP BY user_id")).
		WithArgs("pending", "submitted").
		WillReturnRows(rows)

	counts, err := repo.PendingCountByUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]int{"user-1": 2, "user-2": 1}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}
