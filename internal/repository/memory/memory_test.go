package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository"
)

func seedCustomer(t *testing.T, store *CustomerStore, phone, id string) *domain.Customer {
	t.Helper()
	customer := &domain.Customer{
		PhoneNumber:  phone,
		CustomerID:   id,
		State:        domain.CustomerStateAwaitingName,
		Stamps:       1,
		LastActivity: time.Now(),
		ResetDate:    time.Now().AddDate(0, 3, 0),
		IsActive:     true,
	}
	require.NoError(t, store.Create(context.Background(), customer))
	return customer
}

func TestCustomerStoreCreateRejectsDuplicates(t *testing.T) {
	store := NewCustomerStore()
	seedCustomer(t, store, "911", "C00001")

	err := store.Create(context.Background(), &domain.Customer{PhoneNumber: "911", CustomerID: "C00002"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	err = store.Create(context.Background(), &domain.Customer{PhoneNumber: "912", CustomerID: "C00001"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCustomerStoreLookups(t *testing.T) {
	store := NewCustomerStore()
	seedCustomer(t, store, "911", "C00001")

	byPhone, err := store.GetByPhone(context.Background(), "911")
	require.NoError(t, err)
	assert.Equal(t, "C00001", byPhone.CustomerID)

	byID, err := store.GetByCustomerID(context.Background(), "C00001")
	require.NoError(t, err)
	assert.Equal(t, "911", byID.PhoneNumber)

	_, err = store.GetByPhone(context.Background(), "999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCustomerStoreReturnsCopies(t *testing.T) {
	store := NewCustomerStore()
	seedCustomer(t, store, "911", "C00001")

	first, err := store.GetByPhone(context.Background(), "911")
	require.NoError(t, err)
	first.Stamps = 99

	second, err := store.GetByPhone(context.Background(), "911")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Stamps)
}

func TestCustomerStoreSetName(t *testing.T) {
	store := NewCustomerStore()
	seedCustomer(t, store, "911", "C00001")
	at := time.Now()

	require.NoError(t, store.SetName(context.Background(), "911", "Maria", at))

	customer, err := store.GetByPhone(context.Background(), "911")
	require.NoError(t, err)
	assert.Equal(t, "Maria", customer.DisplayName())
	assert.Equal(t, domain.CustomerStateActive, customer.State)
	assert.Equal(t, at, customer.LastActivity)

	assert.ErrorIs(t, store.SetName(context.Background(), "999", "Maria", at), repository.ErrNotFound)
}

func TestCustomerStoreConditionalMutations(t *testing.T) {
	store := NewCustomerStore()
	seedCustomer(t, store, "911", "C00001")
	at := time.Now()

	stamps, err := store.AddStamp(context.Background(), "C00001", at)
	require.NoError(t, err)
	assert.Equal(t, 2, stamps)

	_, err = store.AddStamp(context.Background(), "C99999", at)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Below target: reward refused.
	_, err = store.GrantReward(context.Background(), "911", 10, at)
	assert.ErrorIs(t, err, repository.ErrConditionFailed)

	for i := 0; i < 8; i++ {
		_, err = store.AddStamp(context.Background(), "C00001", at)
		require.NoError(t, err)
	}
	rewards, err := store.GrantReward(context.Background(), "911", 10, at)
	require.NoError(t, err)
	assert.Equal(t, 1, rewards)

	rewards, err = store.RedeemReward(context.Background(), "C00001", at)
	require.NoError(t, err)
	assert.Equal(t, 0, rewards)

	customer, err := store.GetByPhone(context.Background(), "911")
	require.NoError(t, err)
	assert.Equal(t, 0, customer.Stamps)

	// Nothing left to redeem.
	_, err = store.RedeemReward(context.Background(), "C00001", at)
	assert.ErrorIs(t, err, repository.ErrConditionFailed)
}

func TestCustomerStoreListPagination(t *testing.T) {
	store := NewCustomerStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		customer := &domain.Customer{
			PhoneNumber: string(rune('a' + i)),
			CustomerID:  string(rune('A' + i)),
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, store.Create(context.Background(), customer))
	}

	page, err := store.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "E", page[0].CustomerID)
	assert.Equal(t, "D", page[1].CustomerID)

	rest, err := store.List(context.Background(), 10, 4)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "A", rest[0].CustomerID)

	empty, err := store.List(context.Background(), 10, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStaffStoreAuthorizationFlag(t *testing.T) {
	store := NewStaffStore()
	require.NoError(t, store.Create(context.Background(), &domain.Staff{
		PhoneNumber:  "911",
		Name:         "Sam",
		IsAuthorized: false,
	}))

	_, err := store.GetAuthorizedByPhone(context.Background(), "911")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAuditLogStoreFindRecent(t *testing.T) {
	store := NewAuditLogStore()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store.NowFunc = func() time.Time { return now }

	entry := &domain.AuditLog{StaffPhone: "911", CustomerID: "C00001", Action: domain.AuditActionStamp}
	require.NoError(t, store.Append(context.Background(), entry))
	assert.Equal(t, now, entry.Timestamp)

	found, err := store.FindRecent(context.Background(), "911", "C00001", domain.AuditActionStamp, now.Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, entry.ID, found.ID)

	// Outside the lookback window.
	_, err = store.FindRecent(context.Background(), "911", "C00001", domain.AuditActionStamp, now.Add(time.Minute))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Different staff, customer, or action does not match.
	_, err = store.FindRecent(context.Background(), "912", "C00001", domain.AuditActionStamp, now.Add(-5*time.Minute))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.FindRecent(context.Background(), "911", "C00002", domain.AuditActionStamp, now.Add(-5*time.Minute))
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.FindRecent(context.Background(), "911", "C00001", domain.AuditActionRedeem, now.Add(-5*time.Minute))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
