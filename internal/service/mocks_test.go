package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

// MockAgreementRepo
type MockAgreementRepo struct {
	mock.Mock
}

func (m *MockAgreementRepo) Create(ctx context.Context, ag *domain.Agreement) error {
	args := m.Called(ctx, ag)
	return args.Error(0)
}
func (m *MockAgreementRepo) GetByID(ctx context.Context, id int64) (*domain.Agreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Agreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) GetByConfirmationCode(ctx context.Context, code string) (*domain.Agreement, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) Update(ctx context.Context, ag *domain.Agreement) error {
	args := m.Called(ctx, ag)
	return args.Error(0)
}
func (m *MockAgreementRepo) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Agreement, int32, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Agreement), args.Get(1).(int32), args.Error(2)
}
func (m *MockAgreementRepo) ListOverlapping(ctx context.Context, vehicleID int64, start, end time.Time) ([]domain.Agreement, error) {
	args := m.Called(ctx, vehicleID, start, end)
	return args.Get(0).([]domain.Agreement), args.Error(1)
}
func (m *MockAgreementRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Agreement, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.Agreement), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListOpenDeposits(ctx context.Context, agreementID int64) ([]domain.OpenDeposit, error) {
	args := m.Called(ctx, agreementID)
	return args.Get(0).([]domain.OpenDeposit), args.Error(1)
}
func (m *MockPaymentRepo) ListExpiredHolds(ctx context.Context, asOf time.Time) ([]domain.OpenDeposit, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).([]domain.OpenDeposit), args.Error(1)
}
func (m *MockPaymentRepo) MarkCanceled(ctx context.Context, paymentID int64) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

// MockRewardRepo
type MockRewardRepo struct {
	mock.Mock
}

func (m *MockRewardRepo) Create(ctx context.Context, tx *domain.RewardTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockRewardRepo) SumHours(ctx context.Context, renterID int64, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, renterID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRewardRepo) ListUsageByRenter(ctx context.Context, from, to time.Time) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(map[int64]decimal.Decimal), args.Error(1)
}

// MockTaxRepo
type MockTaxRepo struct {
	mock.Mock
}

func (m *MockTaxRepo) ListForAgreement(ctx context.Context, agreementID int64) ([]domain.Tax, error) {
	args := m.Called(ctx, agreementID)
	return args.Get(0).([]domain.Tax), args.Error(1)
}
func (m *MockTaxRepo) AttachToAgreement(ctx context.Context, agreementID int64, taxIDs []int64) error {
	args := m.Called(ctx, agreementID, taxIDs)
	return args.Error(0)
}

// MockMileageRepo
type MockMileageRepo struct {
	mock.Mock
}

func (m *MockMileageRepo) GetByID(ctx context.Context, id int64) (*domain.MileagePackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MileagePackage), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) CreateSnapshot(ctx context.Context, snap *domain.VehicleSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetSnapshot(ctx context.Context, id int64) (*domain.VehicleSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleSnapshot), args.Error(1)
}

// MockApartmentRepo
type MockApartmentRepo struct {
	mock.Mock
}

func (m *MockApartmentRepo) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Apartment), args.Error(1)
}

// MockRenterRepo
type MockRenterRepo struct {
	mock.Mock
}

func (m *MockRenterRepo) GetByID(ctx context.Context, id int64) (*domain.Renter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Renter), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Authorize(ctx context.Context, params AuthorizeParams) (*Authorization, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Authorization), args.Error(1)
}
func (m *MockGateway) Cancel(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}

// MockDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) DispatchUnlock(agreementID int64, telematicsRef string) {
	m.Called(agreementID, telematicsRef)
}
func (m *MockDispatcher) DispatchLock(agreementID int64, telematicsRef string) {
	m.Called(agreementID, telematicsRef)
}

// MockEmail
type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) SendCheckOutReceipt(ctx context.Context, email, name, confirmationCode string, total decimal.Decimal) error {
	args := m.Called(ctx, email, name, confirmationCode, total)
	return args.Error(0)
}
func (m *MockEmail) SendCheckInReceipt(ctx context.Context, email, name, confirmationCode string, total decimal.Decimal) error {
	args := m.Called(ctx, email, name, confirmationCode, total)
	return args.Error(0)
}
func (m *MockEmail) SendOverdueNotice(ctx context.Context, email, name, confirmationCode string, dueBack time.Time) error {
	args := m.Called(ctx, email, name, confirmationCode, dueBack)
	return args.Error(0)
}
func (m *MockEmail) SendRewardSummary(ctx context.Context, email, name string, usedHours decimal.Decimal) error {
	args := m.Called(ctx, email, name, usedHours)
	return args.Error(0)
}
func (m *MockEmail) SendBillingAlert(ctx context.Context, subject, detail string) error {
	args := m.Called(ctx, subject, detail)
	return args.Error(0)
}

// fakeTxRunner hands the test's mock repositories to the transactional
// closure; there is no real transaction to roll back.
type fakeTxRunner struct {
	repos repository.TxRepositories
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(repository.TxRepositories) error) error {
	return fn(f.repos)
}
