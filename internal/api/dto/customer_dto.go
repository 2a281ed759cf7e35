package dto

import (
	"time"

	"github.com/spec-kit/coffee-passport/internal/domain"
)

// CustomerResponse is the admin view of one passport.
type CustomerResponse struct {
	ID           string               `json:"id"`
	PhoneNumber  string               `json:"phone_number"`
	CustomerID   string               `json:"customer_id"`
	Name         *string              `json:"name"`
	State        domain.CustomerState `json:"state"`
	Stamps       int                  `json:"stamps"`
	Rewards      int                  `json:"rewards"`
	CreatedAt    time.Time            `json:"created_at"`
	LastActivity time.Time            `json:"last_activity"`
	ResetDate    time.Time            `json:"reset_date"`
	IsActive     bool                 `json:"is_active"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           customer.ID,
		PhoneNumber:  customer.PhoneNumber,
		CustomerID:   customer.CustomerID,
		Name:         customer.Name,
		State:        customer.State,
		Stamps:       customer.Stamps,
		Rewards:      customer.Rewards,
		CreatedAt:    customer.CreatedAt,
		LastActivity: customer.LastActivity,
		ResetDate:    customer.ResetDate,
		IsActive:     customer.IsActive,
	}
}
