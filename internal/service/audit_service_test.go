package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Cheragshah/udyamipmp-api/internal/models"
)

type fakeAuditReader struct {
	events    []models.AuditEvent
	lastTable string
	lastLimit int
}

func (f *fakeAuditReader) History(_ context.Context, tableName, _ string, limit int) ([]models.AuditEvent, error) {
	f.lastTable = tableName
	f.lastLimit = limit
	return f.events, nil
}

func TestAuditServiceHistory(t *testing.T) {
	reader := &fakeAuditReader{events: []models.AuditEvent{
		{AuditLog: models.AuditLog{Action: models.AuditActionBulkVerify}, ChangedByName: "Coach Rita"},
	}}
	svc := NewAuditService(reader, zap.NewNop())

	resp, err := svc.History(context.Background(), "task_submissions", "rec-1", 10)
	require.NoError(t, err)
	require.Equal(t, "task_submissions", resp.TableName)
	require.Len(t, resp.Events, 1)
	require.Equal(t, "Coach Rita", resp.Events[0].ChangedByName)
}

func TestAuditServiceHistoryUnknownRecordIsEmpty(t *testing.T) {
	svc := NewAuditService(&fakeAuditReader{}, zap.NewNop())

	resp, err := svc.History(context.Background(), "documents", "missing", 0)
	require.NoError(t, err)
	require.NotNil(t, resp.Events)
	require.Empty(t, resp.Events)
}

func TestAuditServiceHistoryRejectsUnauditedTable(t *testing.T) {
	svc := NewAuditService(&fakeAuditReader{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.History(ctx, "users", "rec-1", 10)
	require.Error(t, err)

	_, err = svc.History(ctx, "", "rec-1", 10)
	require.Error(t, err)

	_, err = svc.History(ctx, "documents", "", 10)
	require.Error(t, err)
}
