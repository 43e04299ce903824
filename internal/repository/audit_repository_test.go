package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

func newAuditRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAuditRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	oldStatus := "submitted"
	newStatus := "verified"
	changedBy := "coach-1"
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WithArgs(sqlmock.AnyArg(), "task_submissions", "sub-1", models.AuditActionBulkVerify, &oldStatus, &newStatus, &changedBy).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.AuditLog{
		TableName: "task_submissions",
		RecordID:  "sub-1",
		Action:    models.AuditActionBulkVerify,
		OldStatus: &oldStatus,
		NewStatus: &newStatus,
		ChangedBy: &changedBy,
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	require.NotEmpty(t, entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryHistorySystemFallback(t *testing.T) {
	db, mock, cleanup := newAuditRepoMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	rows := sqlmock.NewRows([]string{"id", "table_name", "record_id", "action", "old_status", "new_status", "changed_by", "created_at", "changed_by_name"}).
		AddRow("log-2", "documents", "doc-1", models.AuditActionStatusChange, "pending", "approved", "coach-1", time.Now(), "Asha Patil").
		AddRow("log-1", "documents", "doc-1", models.AuditActionStatusChange, nil, "pending", nil, time.Now().Add(-time.Hour), "System")
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(p.full_name, 'System') AS changed_by_name")).
		WithArgs("documents", "doc-1", 50).
		WillReturnRows(rows)

	events, err := repo.History(context.Background(), "documents", "doc-1", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "Asha Patil", events[0].ChangedByName)
	require.Equal(t, "System", events[1].ChangedByName)
	require.NoError(t, mock.ExpectationsWereMet())
}
