package postgres

import (
	"context"
	"database/sql"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

type renterRepository struct {
	db dbtx
}

func NewRenterRepository(db dbtx) repository.RenterRepository {
	return &renterRepository{db: db}
}

func (r *renterRepository) GetByID(ctx context.Context, id int64) (*domain.Renter, error) {
	rt := &domain.Renter{}
	query := `SELECT id, email, name, apartment_id, plan_tier, plan_renewal_date, gateway_customer_ref, default_payment_method_ref FROM renters WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.Email, &rt.Name, &rt.ApartmentID, &rt.PlanTier, &rt.PlanRenewalDate, &rt.GatewayCustomerRef, &rt.DefaultPaymentMethodRef)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}
