package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coffee-passport/internal/repository/memory"
	apperrors "github.com/spec-kit/coffee-passport/pkg/util/errorutil"
)

func TestStaffCreateNormalizesPhone(t *testing.T) {
	svc := NewStaffService(memory.NewStaffStore())

	staff, err := svc.Create(context.Background(), "+91 98765 43210", "  Sam  ")
	require.NoError(t, err)
	assert.Equal(t, "919876543210", staff.PhoneNumber)
	assert.Equal(t, "Sam", staff.Name)
	assert.True(t, staff.IsAuthorized)
}

func TestStaffCreateValidation(t *testing.T) {
	svc := NewStaffService(memory.NewStaffStore())

	_, err := svc.Create(context.Background(), "", "Sam")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.Create(context.Background(), "919876543210", "   ")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestStaffCreateDuplicate(t *testing.T) {
	svc := NewStaffService(memory.NewStaffStore())

	_, err := svc.Create(context.Background(), "919876543210", "Sam")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "+919876543210", "Sam Again")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestStaffRemove(t *testing.T) {
	svc := NewStaffService(memory.NewStaffStore())

	_, err := svc.Create(context.Background(), "919876543210", "Sam")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), "919876543210"))

	err = svc.Remove(context.Background(), "919876543210")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	members, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, members)
}
