package dto

import (
	"time"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// AuditLogResponse is one audit trail entry.
type AuditLogResponse struct {
	ID         string             `json:"id"`
	StaffPhone string             `json:"staff_phone"`
	CustomerID string             `json:"customer_id"`
	Action     domain.AuditAction `json:"action"`
	Timestamp  time.Time          `json:"timestamp"`
	Details    string             `json:"details"`
}

// NewAuditLogResponse maps a domain audit entry.
func NewAuditLogResponse(entry *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         entry.ID,
		StaffPhone: entry.StaffPhone,
		CustomerID: entry.CustomerID,
		Action:     entry.Action,
		Timestamp:  entry.Timestamp,
		Details:    entry.Details,
	}
}
