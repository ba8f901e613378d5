package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"urbandrive-backend/internal/domain"
)

func TestRewardService_GetBalance(t *testing.T) {
	renters := &MockRenterRepo{}
	apartments := &MockApartmentRepo{}
	usage := &MockRewardRepo{}

	renters.On("GetByID", mock.Anything, int64(7)).Return(testRenter(), nil)
	apartments.On("GetByID", mock.Anything, int64(3)).Return(testApartment(), nil)
	usage.On("SumHours", mock.Anything, int64(7), mock.Anything, mock.Anything).Return(dec("2"), nil)

	svc := NewRewardService(renters, apartments, usage)
	balance, err := svc.GetBalance(context.Background(), 7)
	require.NoError(t, err)

	// Gold plan active, so the apartment's gold allotment applies
	assert.True(t, balance.MaxAllowed.Equal(dec("5")))
	assert.True(t, balance.Used.Equal(dec("2")))
	assert.True(t, balance.Remaining.Equal(dec("3")))
	assert.True(t, balance.WeekEnd.Sub(balance.WeekStart).Hours() == 7*24)
	assert.True(t, balance.WeekStart.Weekday() == 1)
}

func TestRewardService_GetBalanceClampsAtZero(t *testing.T) {
	renters := &MockRenterRepo{}
	apartments := &MockApartmentRepo{}
	usage := &MockRewardRepo{}

	renters.On("GetByID", mock.Anything, int64(7)).Return(testRenter(), nil)
	apartments.On("GetByID", mock.Anything, int64(3)).Return(testApartment(), nil)
	usage.On("SumHours", mock.Anything, int64(7), mock.Anything, mock.Anything).Return(dec("9"), nil)

	svc := NewRewardService(renters, apartments, usage)
	balance, err := svc.GetBalance(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, balance.Remaining.IsZero())
	assert.True(t, balance.Used.Equal(dec("9")))
}

func TestRewardService_GetBalanceLapsedPlanFallsToFreeTier(t *testing.T) {
	renters := &MockRenterRepo{}
	apartments := &MockApartmentRepo{}
	usage := &MockRewardRepo{}

	lapsed := testRenter()
	lapsed.PlanRenewalDate = "2020-01-01"

	renters.On("GetByID", mock.Anything, int64(7)).Return(lapsed, nil)
	apartments.On("GetByID", mock.Anything, int64(3)).Return(testApartment(), nil)
	usage.On("SumHours", mock.Anything, int64(7), mock.Anything, mock.Anything).Return(dec("0"), nil)

	svc := NewRewardService(renters, apartments, usage)
	balance, err := svc.GetBalance(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, balance.MaxAllowed.Equal(dec("1")))
}

func TestRewardService_GetBalanceUnknownRenter(t *testing.T) {
	renters := &MockRenterRepo{}
	apartments := &MockApartmentRepo{}
	usage := &MockRewardRepo{}

	renters.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	svc := NewRewardService(renters, apartments, usage)
	_, err := svc.GetBalance(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRewardService_GetBalanceCorruptRenewalDate(t *testing.T) {
	renters := &MockRenterRepo{}
	apartments := &MockApartmentRepo{}
	usage := &MockRewardRepo{}

	corrupt := testRenter()
	corrupt.PlanRenewalDate = "not-a-date"

	renters.On("GetByID", mock.Anything, int64(7)).Return(corrupt, nil)
	apartments.On("GetByID", mock.Anything, int64(3)).Return(testApartment(), nil)

	svc := NewRewardService(renters, apartments, usage)
	_, err := svc.GetBalance(context.Background(), 7)

	var parseErr *domain.PlanDateParseError
	assert.ErrorAs(t, err, &parseErr)
}
