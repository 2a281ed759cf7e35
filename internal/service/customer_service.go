package service

import (
	"context"
	"errors"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
	apperrors "github.com/spec-kit/coffee-passport/pkg/util/errorutil"
)

// CustomerService serves the admin read views over passports.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService constructs the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// List returns customers, newest first.
func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	return s.customers.List(ctx, limit, offset)
}

// GetByCustomerID fetches one passport by its public token.
func (s *CustomerService) GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customers.GetByCustomerID(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("customer", map[string]any{"customer_id": customerID})
	}
	if err != nil {
		return nil, err
	}
	return customer, nil
}
