package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urbandrive-backend/internal/domain"
)

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	captureBefore := time.Now().UTC().Add(7 * 24 * time.Hour)
	agreementID := int64(42)

	p := &domain.Payment{
		AgreementID:      &agreementID,
		RenterID:         7,
		PaymentMethodID:  5,
		Status:           domain.PaymentStatusRequiresCapture,
		Amount:           decimal.Zero,
		AmountAuthorized: decimal.RequireFromString("180.00"),
		Note:             "checkout authorization",
		ReferenceNumber:  "pi_abc123",
		CaptureBefore:    &captureBefore,
		IsDeposit:        false,
	}

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(int64(42), int64(7), int64(5), p.Status, p.Amount, p.AmountAuthorized,
			p.Note, p.ReferenceNumber, &captureBefore, false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))

	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(17), p.ID)
}

func TestPaymentRepository_ListOpenDeposits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("OpenHoldsFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, reference_number FROM payments").
			WithArgs(int64(42), string(domain.PaymentStatusRequiresCapture)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "reference_number"}).
				AddRow(int64(17), "pi_dep1").
				AddRow(int64(18), "pi_dep2"))

		deposits, err := repo.ListOpenDeposits(ctx, 42)
		require.NoError(t, err)
		require.Len(t, deposits, 2)
		assert.Equal(t, int64(17), deposits[0].PaymentID)
		assert.Equal(t, "pi_dep1", deposits[0].ReferenceNumber)
	})

	t.Run("NoneOpen", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, reference_number FROM payments").
			WithArgs(int64(42), string(domain.PaymentStatusRequiresCapture)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "reference_number"}))

		deposits, err := repo.ListOpenDeposits(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, deposits)
	})
}

func TestPaymentRepository_ListExpiredHolds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)
	asOf := time.Now().UTC()

	mock.ExpectQuery("SELECT id, reference_number FROM payments").
		WithArgs(string(domain.PaymentStatusRequiresCapture), asOf).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reference_number"}).
			AddRow(int64(21), "pi_stale"))

	holds, err := repo.ListExpiredHolds(context.Background(), asOf)
	require.NoError(t, err)
	require.Len(t, holds, 1)
	assert.Equal(t, "pi_stale", holds[0].ReferenceNumber)
}

func TestPaymentRepository_MarkCanceled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewPaymentRepository(db)

	mock.ExpectExec("UPDATE payments SET status").
		WithArgs(string(domain.PaymentStatusCanceled), int64(17)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkCanceled(context.Background(), 17))
}
