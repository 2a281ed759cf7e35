// Package memory provides map-backed repository implementations used by
// tests and by local development without Postgres. Conditional mutations
// hold the store mutex for their full read-check-write, matching the
// atomicity the SQL implementations get from single statements.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

// CustomerStore is an in-memory CustomerRepository.
type CustomerStore struct {
	mu      sync.Mutex
	byPhone map[string]*domain.Customer
	byID    map[string]*domain.Customer
	seq     int
}

// NewCustomerStore creates an empty store.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		byPhone: make(map[string]*domain.Customer),
		byID:    make(map[string]*domain.Customer),
	}
}

func (s *CustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byPhone[customer.PhoneNumber]; exists {
		return repository.ErrDuplicate
	}
	if _, exists := s.byID[customer.CustomerID]; exists {
		return repository.ErrDuplicate
	}

	s.seq++
	customer.ID = strconv.Itoa(s.seq)
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}

	stored := *customer
	s.byPhone[stored.PhoneNumber] = &stored
	s.byID[stored.CustomerID] = &stored
	return nil
}

func (s *CustomerStore) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.byPhone[phone]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *customer
	return &copied, nil
}

func (s *CustomerStore) GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.byID[customerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *customer
	return &copied, nil
}

func (s *CustomerStore) SetName(ctx context.Context, phone, name string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.byPhone[phone]
	if !ok {
		return repository.ErrNotFound
	}
	customer.Name = &name
	customer.State = domain.CustomerStateActive
	customer.LastActivity = at
	return nil
}

func (s *CustomerStore) AddStamp(ctx context.Context, customerID string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.byID[customerID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	customer.Stamps++
	customer.LastActivity = at
	return customer.Stamps, nil
}

func (s *CustomerStore) GrantReward(ctx context.Context, phone string, stampTarget int, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.byPhone[phone]
	if !ok || customer.Stamps < stampTarget {
		return 0, repository.ErrConditionFailed
	}
	customer.Rewards++
	customer.LastActivity = at
	return customer.Rewards, nil
}

func (s *CustomerStore) RedeemReward(ctx context.Context, customerID string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.byID[customerID]
	if !ok || customer.Rewards < 1 {
		return 0, repository.ErrConditionFailed
	}
	customer.Stamps = 0
	customer.Rewards--
	customer.LastActivity = at
	return customer.Rewards, nil
}

func (s *CustomerStore) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Customer, 0, len(s.byPhone))
	for _, customer := range s.byPhone {
		all = append(all, *customer)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *CustomerStore) Count(ctx context.Context, filter repository.CustomerFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, customer := range s.byPhone {
		if filter.ActiveSince != nil && customer.LastActivity.Before(*filter.ActiveSince) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *CustomerStore) SumStamps(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum int64
	for _, customer := range s.byPhone {
		sum += int64(customer.Stamps)
	}
	return sum, nil
}

// StaffStore is an in-memory StaffRepository.
type StaffStore struct {
	mu      sync.Mutex
	byPhone map[string]*domain.Staff
	seq     int
}

// NewStaffStore creates an empty store.
func NewStaffStore() *StaffStore {
	return &StaffStore{byPhone: make(map[string]*domain.Staff)}
}

func (s *StaffStore) Create(ctx context.Context, staff *domain.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byPhone[staff.PhoneNumber]; exists {
		return repository.ErrDuplicate
	}
	s.seq++
	staff.ID = strconv.Itoa(s.seq)
	if staff.CreatedAt.IsZero() {
		staff.CreatedAt = time.Now()
	}
	stored := *staff
	s.byPhone[stored.PhoneNumber] = &stored
	return nil
}

func (s *StaffStore) GetAuthorizedByPhone(ctx context.Context, phone string) (*domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.byPhone[phone]
	if !ok || !staff.IsAuthorized {
		return nil, repository.ErrNotFound
	}
	copied := *staff
	return &copied, nil
}

func (s *StaffStore) List(ctx context.Context) ([]domain.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Staff, 0, len(s.byPhone))
	for _, staff := range s.byPhone {
		all = append(all, *staff)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (s *StaffStore) DeleteByPhone(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byPhone[phone]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byPhone, phone)
	return nil
}

// AuditLogStore is an in-memory AuditLogRepository. NowFunc lets tests pin
// the server-assigned timestamps.
type AuditLogStore struct {
	mu      sync.Mutex
	entries []domain.AuditLog
	seq     int

	NowFunc func() time.Time
}

// NewAuditLogStore creates an empty store.
func NewAuditLogStore() *AuditLogStore {
	return &AuditLogStore{NowFunc: time.Now}
}

func (s *AuditLogStore) Append(ctx context.Context, entry *domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	entry.ID = strconv.Itoa(s.seq)
	entry.Timestamp = s.NowFunc()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *AuditLogStore) FindRecent(ctx context.Context, staffPhone, customerID string, action domain.AuditAction, since time.Time) (*domain.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if entry.StaffPhone != staffPhone || entry.CustomerID != customerID || entry.Action != action {
			continue
		}
		if entry.Timestamp.Before(since) {
			continue
		}
		copied := entry
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (s *AuditLogStore) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	result := make([]domain.AuditLog, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.entries[i])
	}
	return result, nil
}

var (
	_ repository.CustomerRepository = (*CustomerStore)(nil)
	_ repository.StaffRepository    = (*StaffStore)(nil)
	_ repository.AuditLogRepository = (*AuditLogStore)(nil)
)
