package models

import "time"

// AuditAction constants represent logged status-change actions.
const (
	AuditActionStatusChange = "STATUS_CHANGE"
	AuditActionBulkVerify   = "BULK_VERIFY"
	AuditActionBulkApprove  = "BULK_APPROVE"
	AuditActionBulkComplete = "BULK_COMPLETE"
	AuditActionLinkDelete   = "LINK_DELETE"
)

// AuditLog is an append-only status-change record keyed by (table_name, record_id).
type AuditLog struct {
	ID        string    `db:"id" json:"id"`
	TableName string    `db:"table_name" json:"table_name"`
	RecordID  string    `db:"record_id" json:"record_id"`
	Action    string    `db:"action" json:"action"`
	OldStatus *string   `db:"old_status" json:"old_status,omitempty"`
	NewStatus *string   `db:"new_status" json:"new_status,omitempty"`
	ChangedBy *string   `db:"changed_by" json:"changed_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuditEvent is an audit log row enriched with the acting user's display name.
type AuditEvent struct {
	AuditLog
	ChangedByName string `db:"changed_by_name" json:"changed_by_name"`
}
