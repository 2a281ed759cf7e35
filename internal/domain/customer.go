package domain

import "time"

// CustomerState enumerates lifecycle states for a passport holder.
type CustomerState string

const (
	// CustomerStateAwaitingName marks a freshly joined customer whose next
	// free-text message is captured as their first name.
	CustomerStateAwaitingName CustomerState = "AWAITING_NAME"
	// CustomerStateActive marks a customer with a completed passport.
	CustomerStateActive CustomerState = "ACTIVE"
)

// Customer is the aggregate for one loyalty passport. PhoneNumber and
// CustomerID each uniquely identify at most one customer.
type Customer struct {
	ID           string
	PhoneNumber  string
	CustomerID   string
	Name         *string
	State        CustomerState
	Stamps       int
	Rewards      int
	CreatedAt    time.Time
	LastActivity time.Time
	ResetDate    time.Time
	IsActive     bool
}

// DisplayName returns the captured name or a neutral fallback for replies
// rendered before name capture completes.
func (c *Customer) DisplayName() string {
	if c.Name != nil && *c.Name != "" {
		return *c.Name
	}
	return "there"
}
