package domain

import "time"

// Staff represents a store employee allowed to stamp and redeem passports.
// Authorization is checked per command, never cached.
type Staff struct {
	ID           string
	PhoneNumber  string
	Name         string
	IsAuthorized bool
	CreatedAt    time.Time
}
