package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/phone"
	"github.com/spec-kit/coffee-passport/internal/repository"
	apperrors "github.com/spec-kit/coffee-passport/pkg/util/errorutil"
)

// StaffService manages staff records through the admin API. The command
// interpreter never creates or removes staff.
type StaffService struct {
	staff repository.StaffRepository
}

// NewStaffService constructs the service.
func NewStaffService(staff repository.StaffRepository) *StaffService {
	return &StaffService{staff: staff}
}

// Create registers an authorized staff member. The phone number is
// normalized so command-time lookups share the canonical key.
func (s *StaffService) Create(ctx context.Context, rawPhone, name string) (*domain.Staff, error) {
	cleanedPhone := phone.Normalize(rawPhone)
	cleanedName := strings.TrimSpace(name)
	if cleanedPhone == "" || cleanedName == "" {
		return nil, apperrors.NewValidationError("phone_number and name required", nil)
	}

	staff := &domain.Staff{
		PhoneNumber:  cleanedPhone,
		Name:         cleanedName,
		IsAuthorized: true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("staff member already exists", nil)
		}
		return nil, err
	}
	return staff, nil
}

// List returns all staff members.
func (s *StaffService) List(ctx context.Context) ([]domain.Staff, error) {
	return s.staff.List(ctx)
}

// Remove deletes a staff member by phone number.
func (s *StaffService) Remove(ctx context.Context, rawPhone string) error {
	err := s.staff.DeleteByPhone(ctx, phone.Normalize(rawPhone))
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("staff member", nil)
	}
	return err
}
