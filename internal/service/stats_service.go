package service

import (
	"context"
	"time"

	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

// StatsOverview summarizes loyalty program state.
type StatsOverview struct {
	TotalCustomers  int64 `json:"total_customers"`
	ActiveCustomers int64 `json:"active_customers"`
	TotalStamps     int64 `json:"total_stamps"`
}

// StatsService derives read-only summary metrics from stored state.
type StatsService struct {
	customers repository.CustomerRepository
	audit     repository.AuditLogRepository
	cfg       config.LoyaltyConfig
	now       func() time.Time
}

// NewStatsService constructs the service.
func NewStatsService(customers repository.CustomerRepository, audit repository.AuditLogRepository, cfg config.LoyaltyConfig) *StatsService {
	return &StatsService{customers: customers, audit: audit, cfg: cfg, now: time.Now}
}

// Overview aggregates customer counts and stamp totals. An empty customer
// set reports zeroes, not an error.
func (s *StatsService) Overview(ctx context.Context) (*StatsOverview, error) {
	total, err := s.customers.Count(ctx, repository.CustomerFilter{})
	if err != nil {
		return nil, err
	}

	activeSince := s.now().Add(-s.cfg.ActiveWindow())
	active, err := s.customers.Count(ctx, repository.CustomerFilter{ActiveSince: &activeSince})
	if err != nil {
		return nil, err
	}

	stamps, err := s.customers.SumStamps(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsOverview{
		TotalCustomers:  total,
		ActiveCustomers: active,
		TotalStamps:     stamps,
	}, nil
}

// AuditTrail returns the most recent audit entries, newest first.
func (s *StatsService) AuditTrail(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.audit.ListRecent(ctx, limit)
}
