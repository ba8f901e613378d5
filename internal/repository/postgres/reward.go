package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

type rewardRepository struct {
	db dbtx
}

func NewRewardRepository(db dbtx) repository.RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(ctx context.Context, tx *domain.RewardTransaction) error {
	query := `INSERT INTO reward_transactions (agreement_id, renter_id, duration, transaction_time)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	return r.db.QueryRowContext(ctx, query, tx.AgreementID, tx.RenterID, tx.Duration, tx.TransactionTime).Scan(&tx.ID)
}

func (r *rewardRepository) SumHours(ctx context.Context, renterID int64, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(duration), 0) FROM reward_transactions
	          WHERE renter_id = $1 AND transaction_time >= $2 AND transaction_time < $3`
	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, renterID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *rewardRepository) ListUsageByRenter(ctx context.Context, from, to time.Time) (map[int64]decimal.Decimal, error) {
	query := `SELECT renter_id, SUM(duration) FROM reward_transactions
	          WHERE transaction_time >= $1 AND transaction_time < $2 GROUP BY renter_id`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usage := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var renterID int64
		var hours decimal.Decimal
		if err := rows.Scan(&renterID, &hours); err != nil {
			return nil, err
		}
		usage[renterID] = hours
	}
	return usage, rows.Err()
}
