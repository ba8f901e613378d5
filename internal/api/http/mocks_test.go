package http

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/service"
)

type MockAgreementService struct {
	mock.Mock
}

func (m *MockAgreementService) CreateAgreement(ctx context.Context, renterID int64, params service.CreateAgreementParams) (*domain.Agreement, error) {
	args := m.Called(ctx, renterID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}

func (m *MockAgreementService) GetAgreement(ctx context.Context, renterID, agreementID int64) (*domain.Agreement, error) {
	args := m.Called(ctx, renterID, agreementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}

func (m *MockAgreementService) ListAgreements(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Agreement, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Agreement), args.Get(1).(int32), args.Error(2)
}

func (m *MockAgreementService) CheckOut(ctx context.Context, renterID, agreementID, snapshotID int64, rewardHours decimal.Decimal) (*service.CheckResult, error) {
	args := m.Called(ctx, renterID, agreementID, snapshotID, rewardHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckResult), args.Error(1)
}

func (m *MockAgreementService) CheckIn(ctx context.Context, renterID, agreementID, snapshotID int64, rewardHours decimal.Decimal) (*service.CheckResult, error) {
	args := m.Called(ctx, renterID, agreementID, snapshotID, rewardHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckResult), args.Error(1)
}

func (m *MockAgreementService) CancelAgreement(ctx context.Context, renterID, agreementID int64) (*domain.Agreement, error) {
	args := m.Called(ctx, renterID, agreementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}

type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) GetBalance(ctx context.Context, renterID int64) (*service.RewardBalance, error) {
	args := m.Called(ctx, renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RewardBalance), args.Error(1)
}
