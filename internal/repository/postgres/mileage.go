package postgres

import (
	"context"
	"database/sql"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

type mileagePackageRepository struct {
	db dbtx
}

func NewMileagePackageRepository(db dbtx) repository.MileagePackageRepository {
	return &mileagePackageRepository{db: db}
}

func (r *mileagePackageRepository) GetByID(ctx context.Context, id int64) (*domain.MileagePackage, error) {
	pkg := &domain.MileagePackage{}
	query := `SELECT id, name, total_miles, discount_rate, active FROM mileage_packages WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&pkg.ID, &pkg.Name, &pkg.TotalMiles, &pkg.DiscountRate, &pkg.Active)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pkg, nil
}
