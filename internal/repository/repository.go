package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
)

type AgreementRepository interface {
	Create(ctx context.Context, ag *domain.Agreement) error
	GetByID(ctx context.Context, id int64) (*domain.Agreement, error)
	// GetByIDForUpdate locks the agreement row for the duration of the
	// surrounding transaction. Every mutating state-machine operation goes
	// through this; the agreement row is the unit of contention.
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Agreement, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.Agreement, error)
	Update(ctx context.Context, ag *domain.Agreement) error
	ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Agreement, int32, error)
	// ListOverlapping returns non-void agreements for the vehicle whose
	// reservation window overlaps [start, end).
	ListOverlapping(ctx context.Context, vehicleID int64, start, end time.Time) ([]domain.Agreement, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Agreement, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	// ListOpenDeposits returns still-open, non-canceled deposit holds for
	// the agreement, suitable for voiding once superseded.
	ListOpenDeposits(ctx context.Context, agreementID int64) ([]domain.OpenDeposit, error)
	ListExpiredHolds(ctx context.Context, asOf time.Time) ([]domain.OpenDeposit, error)
	MarkCanceled(ctx context.Context, paymentID int64) error
}

type RewardRepository interface {
	Create(ctx context.Context, tx *domain.RewardTransaction) error
	SumHours(ctx context.Context, renterID int64, from, to time.Time) (decimal.Decimal, error)
	// ListUsageByRenter aggregates redeemed hours per renter over a window
	ListUsageByRenter(ctx context.Context, from, to time.Time) (map[int64]decimal.Decimal, error)
}

type TaxRepository interface {
	ListForAgreement(ctx context.Context, agreementID int64) ([]domain.Tax, error)
	AttachToAgreement(ctx context.Context, agreementID int64, taxIDs []int64) error
}

type MileagePackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.MileagePackage, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	CreateSnapshot(ctx context.Context, snap *domain.VehicleSnapshot) error
	GetSnapshot(ctx context.Context, id int64) (*domain.VehicleSnapshot, error)
}

type ApartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Apartment, error)
}

type RenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Renter, error)
}

// TxRepositories bundles the repositories that participate in a single
// persistence transaction during a state-machine operation.
type TxRepositories struct {
	Agreements AgreementRepository
	Payments   PaymentRepository
	Rewards    RewardRepository
	Taxes      TaxRepository
}

// TxRunner runs fn inside one database transaction. The agreement update,
// the Payment insert, and any RewardTransaction insert share this boundary.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(TxRepositories) error) error
}
