package domain

import "time"

// AuditAction enumerates recorded action kinds.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionLogin  AuditAction = "LOGIN"
	AuditActionLogout AuditAction = "LOGOUT"
	AuditActionView   AuditAction = "VIEW"
	AuditActionExport AuditAction = "EXPORT"
)

// AuditLog is an immutable trail entry for compliance tracking.
type AuditLog struct {
	ID          string
	UserID      *string
	Action      AuditAction
	EntityType  string
	EntityID    *string
	Description string
	IPAddress   *string
	Changes     map[string]any
	Timestamp   time.Time
}
