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

func TestRewardRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRewardRepository(db)
	now := time.Now().UTC()
	agreementID := int64(42)

	tx := &domain.RewardTransaction{
		AgreementID:     &agreementID,
		RenterID:        7,
		Duration:        decimal.RequireFromString("2"),
		TransactionTime: now,
	}

	mock.ExpectQuery("INSERT INTO reward_transactions").
		WithArgs(int64(42), int64(7), tx.Duration, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

	require.NoError(t, repo.Create(context.Background(), tx))
	assert.Equal(t, int64(31), tx.ID)
}

func TestRewardRepository_SumHours(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRewardRepository(db)
	ctx := context.Background()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	t.Run("HoursUsed", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(duration\\), 0\\) FROM reward_transactions").
			WithArgs(int64(7), from, to).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("3.5"))

		sum, err := repo.SumHours(ctx, 7, from, to)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.RequireFromString("3.5")))
	})

	t.Run("NoTransactions", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(duration\\), 0\\) FROM reward_transactions").
			WithArgs(int64(7), from, to).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

		sum, err := repo.SumHours(ctx, 7, from, to)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})
}

func TestRewardRepository_ListUsageByRenter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRewardRepository(db)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery("SELECT renter_id, SUM\\(duration\\) FROM reward_transactions").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"renter_id", "sum"}).
			AddRow(int64(7), "2").
			AddRow(int64(8), "0.5"))

	usage, err := repo.ListUsageByRenter(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, usage, 2)
	assert.True(t, usage[7].Equal(decimal.RequireFromString("2")))
	assert.True(t, usage[8].Equal(decimal.RequireFromString("0.5")))
}
