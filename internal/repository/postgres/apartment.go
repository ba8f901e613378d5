package postgres

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

type apartmentRepository struct {
	db dbtx
}

func NewApartmentRepository(db dbtx) repository.ApartmentRepository {
	return &apartmentRepository{db: db}
}

func (r *apartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Apartment, error) {
	apt := &domain.Apartment{}
	var free, silver, gold, platinum decimal.NullDecimal
	query := `SELECT id, name, free_hours, silver_hours, gold_hours, platinum_hours, mileage_conversion FROM apartments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&apt.ID, &apt.Name, &free, &silver, &gold, &platinum, &apt.MileageConversion)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if free.Valid {
		apt.FreeHours = &free.Decimal
	}
	if silver.Valid {
		apt.SilverHours = &silver.Decimal
	}
	if gold.Valid {
		apt.GoldHours = &gold.Decimal
	}
	if platinum.Valid {
		apt.PlatinumHours = &platinum.Decimal
	}
	return apt, nil
}
