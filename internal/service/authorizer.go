package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

// StaffAuthorizer resolves a normalized phone number to an authorized staff
// record, tolerating inconsistent country-code entry. Transport clients
// disagree on whether the sender phone carries the country prefix, so the
// lookup tries both forms without weakening the is_authorized flag itself.
type StaffAuthorizer struct {
	staff  repository.StaffRepository
	prefix string
}

// NewStaffAuthorizer constructs the authorizer.
func NewStaffAuthorizer(staff repository.StaffRepository, cfg config.LoyaltyConfig) *StaffAuthorizer {
	return &StaffAuthorizer{staff: staff, prefix: cfg.CountryCodePrefix}
}

// Resolve returns the matching authorized staff record, or nil when the
// sender is not authorized. A nil staff with nil error is a user-facing
// outcome, not a fault.
func (a *StaffAuthorizer) Resolve(ctx context.Context, phone string) (*domain.Staff, error) {
	staff, err := a.lookup(ctx, phone)
	if staff != nil || err != nil {
		return staff, err
	}

	if a.prefix != "" && !strings.HasPrefix(phone, a.prefix) {
		staff, err = a.lookup(ctx, a.prefix+phone)
		if staff != nil || err != nil {
			return staff, err
		}
	}

	if a.prefix != "" && strings.HasPrefix(phone, a.prefix) && len(phone) > 10 {
		staff, err = a.lookup(ctx, phone[len(a.prefix):])
		if staff != nil || err != nil {
			return staff, err
		}
	}

	return nil, nil
}

func (a *StaffAuthorizer) lookup(ctx context.Context, phone string) (*domain.Staff, error) {
	staff, err := a.staff.GetAuthorizedByPhone(ctx, phone)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return staff, nil
}
