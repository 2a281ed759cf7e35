package repository

import "errors"

// Sentinel errors returned by repositories. The service layer depends on
// these instead of driver-specific errors so the in-memory and Postgres
// implementations stay interchangeable.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate indicates a unique constraint rejected an insert.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConditionFailed indicates a conditional mutation matched no rows
	// because its guard (stamp target, reward balance) did not hold.
	ErrConditionFailed = errors.New("condition not met")
)
