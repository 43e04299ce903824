package dto

import "github.com/Cheragshah/udyamipmp-api/internal/models"

// AuditHistoryResponse lists status-change events for a record, newest first.
type AuditHistoryResponse struct {
	TableName string               `json:"table_name"`
	RecordID  string               `json:"record_id"`
	Events    []models.AuditEvent `json:"events"`
}
