package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository/memory"
)

func TestStatsOverviewEmpty(t *testing.T) {
	svc := NewStatsService(memory.NewCustomerStore(), memory.NewAuditLogStore(), config.LoyaltyConfig{ActiveWindowDays: 30})

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), overview.TotalCustomers)
	assert.Equal(t, int64(0), overview.ActiveCustomers)
	assert.Equal(t, int64(0), overview.TotalStamps)
}

func TestStatsOverviewCountsActiveWindow(t *testing.T) {
	customers := memory.NewCustomerStore()
	clock := newFakeClock()

	seed := func(phone, id string, stamps int, lastActivity time.Time) {
		err := customers.Create(context.Background(), &domain.Customer{
			PhoneNumber:  phone,
			CustomerID:   id,
			Stamps:       stamps,
			LastActivity: lastActivity,
		})
		require.NoError(t, err)
	}
	seed("911", "C00001", 3, clock.Now())
	seed("912", "C00002", 7, clock.Now().AddDate(0, 0, -10))
	seed("913", "C00003", 2, clock.Now().AddDate(0, 0, -45))

	svc := NewStatsService(customers, memory.NewAuditLogStore(), config.LoyaltyConfig{ActiveWindowDays: 30})
	svc.now = clock.Now

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), overview.TotalCustomers)
	assert.Equal(t, int64(2), overview.ActiveCustomers)
	assert.Equal(t, int64(12), overview.TotalStamps)
}

func TestAuditTrailNewestFirstAndCapped(t *testing.T) {
	audit := memory.NewAuditLogStore()
	for i := 0; i < 3; i++ {
		err := audit.Append(context.Background(), &domain.AuditLog{
			StaffPhone: "919",
			CustomerID: "C00001",
			Action:     domain.AuditActionStamp,
		})
		require.NoError(t, err)
	}

	svc := NewStatsService(memory.NewCustomerStore(), audit, config.LoyaltyConfig{})

	entries, err := svc.AuditTrail(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "3", entries[0].ID)
	assert.Equal(t, "2", entries[1].ID)

	all, err := svc.AuditTrail(context.Background(), -1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
