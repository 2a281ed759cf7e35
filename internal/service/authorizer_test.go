package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/config"
	"github.com/spec-kit/coffee-passport/internal/domain"
	"github.com/spec-kit/coffee-passport/internal/repository/memory"
)

func newAuthorizer(t *testing.T, storedPhones ...string) *StaffAuthorizer {
	t.Helper()
	store := memory.NewStaffStore()
	for _, phone := range storedPhones {
		err := store.Create(context.Background(), &domain.Staff{
			PhoneNumber:  phone,
			Name:         "Sam",
			IsAuthorized: true,
		})
		require.NoError(t, err)
	}
	return NewStaffAuthorizer(store, config.LoyaltyConfig{CountryCodePrefix: "91"})
}

func TestStaffAuthorizerExactMatch(t *testing.T) {
	authorizer := newAuthorizer(t, "919876543210")

	staff, err := authorizer.Resolve(context.Background(), "919876543210")
	require.NoError(t, err)
	require.NotNil(t, staff)
	assert.Equal(t, "919876543210", staff.PhoneNumber)
}

func TestStaffAuthorizerPrependsPrefix(t *testing.T) {
	// Stored with country code, sender arrives without it.
	authorizer := newAuthorizer(t, "919876543210")

	staff, err := authorizer.Resolve(context.Background(), "9876543210")
	require.NoError(t, err)
	require.NotNil(t, staff)
	assert.Equal(t, "919876543210", staff.PhoneNumber)
}

func TestStaffAuthorizerStripsPrefix(t *testing.T) {
	// Stored without country code, sender arrives with it.
	authorizer := newAuthorizer(t, "9876543210")

	staff, err := authorizer.Resolve(context.Background(), "919876543210")
	require.NoError(t, err)
	require.NotNil(t, staff)
	assert.Equal(t, "9876543210", staff.PhoneNumber)
}

func TestStaffAuthorizerShortNumberNotStripped(t *testing.T) {
	// A number that merely starts with the prefix digits is not rewritten
	// when it is too short to contain a country code.
	authorizer := newAuthorizer(t, "10203")

	staff, err := authorizer.Resolve(context.Background(), "9110203")
	require.NoError(t, err)
	assert.Nil(t, staff)
}

func TestStaffAuthorizerUnknownSender(t *testing.T) {
	authorizer := newAuthorizer(t, "919876543210")

	staff, err := authorizer.Resolve(context.Background(), "911111111111")
	require.NoError(t, err)
	assert.Nil(t, staff)
}

func TestStaffAuthorizerRevokedStaff(t *testing.T) {
	store := memory.NewStaffStore()
	err := store.Create(context.Background(), &domain.Staff{
		PhoneNumber:  "919876543210",
		Name:         "Sam",
		IsAuthorized: false,
	})
	require.NoError(t, err)
	authorizer := NewStaffAuthorizer(store, config.LoyaltyConfig{CountryCodePrefix: "91"})

	staff, err := authorizer.Resolve(context.Background(), "919876543210")
	require.NoError(t, err)
	assert.Nil(t, staff)
}
