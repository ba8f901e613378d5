package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"urbandrive-backend/internal/repository"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx,
// letting every repository run standalone or inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.AgreementRepository
	repository.PaymentRepository
	repository.RewardRepository
	repository.TaxRepository
	repository.MileagePackageRepository
	repository.VehicleRepository
	repository.ApartmentRepository
	repository.RenterRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		AgreementRepository:      NewAgreementRepository(db),
		PaymentRepository:        NewPaymentRepository(db),
		RewardRepository:         NewRewardRepository(db),
		TaxRepository:            NewTaxRepository(db),
		MileagePackageRepository: NewMileagePackageRepository(db),
		VehicleRepository:        NewVehicleRepository(db),
		ApartmentRepository:      NewApartmentRepository(db),
		RenterRepository:         NewRenterRepository(db),
	}
}

// WithinTx runs fn inside a single database transaction, handing it
// repositories bound to that transaction. Row locks taken through
// GetByIDForUpdate hold until commit or rollback.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.TxRepositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := repository.TxRepositories{
		Agreements: NewAgreementRepository(tx),
		Payments:   NewPaymentRepository(tx),
		Rewards:    NewRewardRepository(tx),
		Taxes:      NewTaxRepository(tx),
	}

	if err := fn(repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
