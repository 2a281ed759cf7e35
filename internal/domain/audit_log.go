package domain

import "time"

// AuditAction enumerates privileged actions recorded in the audit log.
type AuditAction string

const (
	AuditActionStamp  AuditAction = "STAMP"
	AuditActionRedeem AuditAction = "REDEEM"
)

// AuditLog is one immutable record of a privileged staff action. Entries are
// append-only; the duplicate-stamp window is derived from them.
type AuditLog struct {
	ID         string
	StaffPhone string
	CustomerID string
	Action     AuditAction
	Timestamp  time.Time
	Details    string
}
