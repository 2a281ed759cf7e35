package dto

import (
	"time"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

// StaffResponse is the admin view of one staff member.
type StaffResponse struct {
	ID           string    `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	Name         string    `json:"name"`
	IsAuthorized bool      `json:"is_authorized"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewStaffResponse maps a domain staff member.
func NewStaffResponse(staff *domain.Staff) StaffResponse {
	return StaffResponse{
		ID:           staff.ID,
		PhoneNumber:  staff.PhoneNumber,
		Name:         staff.Name,
		IsAuthorized: staff.IsAuthorized,
		CreatedAt:    staff.CreatedAt,
	}
}
