package postgres

import (
	"context"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

type taxRepository struct {
	db dbtx
}

func NewTaxRepository(db dbtx) repository.TaxRepository {
	return &taxRepository{db: db}
}

func (r *taxRepository) ListForAgreement(ctx context.Context, agreementID int64) ([]domain.Tax, error) {
	query := `SELECT t.id, t.name, t.type, t.multiplier FROM taxes t
	          JOIN agreement_taxes at ON at.tax_id = t.id
	          WHERE at.agreement_id = $1`
	rows, err := r.db.QueryContext(ctx, query, agreementID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taxes []domain.Tax
	for rows.Next() {
		var t domain.Tax
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.Multiplier); err != nil {
			return nil, err
		}
		taxes = append(taxes, t)
	}
	return taxes, rows.Err()
}

func (r *taxRepository) AttachToAgreement(ctx context.Context, agreementID int64, taxIDs []int64) error {
	query := `INSERT INTO agreement_taxes (agreement_id, tax_id) VALUES ($1, $2)`
	for _, taxID := range taxIDs {
		if _, err := r.db.ExecContext(ctx, query, agreementID, taxID); err != nil {
			return err
		}
	}
	return nil
}
