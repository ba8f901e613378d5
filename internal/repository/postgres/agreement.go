package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

const agreementColumns = `id, confirmation_code, status, renter_id, vehicle_id, apartment_id, payment_method_id, location_id,
	rsvp_pickup_time, rsvp_drop_off_time, actual_pickup_time, actual_drop_off_time,
	liability_protection, liability_rate, damage_protection, damage_rate,
	duration_rate, msrp_factor, utilization_factor, tax_rate_snapshot,
	mileage_package_id, mileage_rate_override, discount_amount, promo_code_id, promo_discount,
	vehicle_snapshot_before_id, vehicle_snapshot_after_id, created_on, updated_on`

type agreementRepository struct {
	db dbtx
}

func NewAgreementRepository(db dbtx) repository.AgreementRepository {
	return &agreementRepository{db: db}
}

func (r *agreementRepository) Create(ctx context.Context, ag *domain.Agreement) error {
	query := `INSERT INTO agreements (confirmation_code, status, renter_id, vehicle_id, apartment_id, payment_method_id, location_id,
	          rsvp_pickup_time, rsvp_drop_off_time, liability_protection, liability_rate, damage_protection, damage_rate,
	          duration_rate, msrp_factor, utilization_factor, tax_rate_snapshot,
	          mileage_package_id, mileage_rate_override, discount_amount, promo_code_id, promo_discount, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24) RETURNING id`
	now := time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		ag.ConfirmationCode, ag.Status, ag.RenterID, ag.VehicleID, ag.ApartmentID, ag.PaymentMethodID, ag.LocationID,
		ag.RsvpPickupTime, ag.RsvpDropOffTime, ag.LiabilityProtection, ag.LiabilityRate, ag.DamageProtection, ag.DamageRate,
		ag.DurationRate, ag.MSRPFactor, ag.UtilizationFactor, ag.TaxRateSnapshot,
		ag.MileagePackageID, nullDecimal(ag.MileageRateOverride), ag.DiscountAmount, ag.PromoCodeID, ag.PromoDiscount,
		now, now,
	).Scan(&ag.ID)
}

func (r *agreementRepository) GetByID(ctx context.Context, id int64) (*domain.Agreement, error) {
	query := fmt.Sprintf(`SELECT %s FROM agreements WHERE id = $1`, agreementColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *agreementRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Agreement, error) {
	query := fmt.Sprintf(`SELECT %s FROM agreements WHERE id = $1 FOR UPDATE`, agreementColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *agreementRepository) GetByConfirmationCode(ctx context.Context, code string) (*domain.Agreement, error) {
	query := fmt.Sprintf(`SELECT %s FROM agreements WHERE confirmation_code = $1`, agreementColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *agreementRepository) Update(ctx context.Context, ag *domain.Agreement) error {
	query := `UPDATE agreements SET status=$1, actual_pickup_time=$2, actual_drop_off_time=$3,
	          vehicle_snapshot_before_id=$4, vehicle_snapshot_after_id=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query,
		ag.Status, ag.ActualPickupTime, ag.ActualDropOffTime,
		ag.VehicleSnapshotBeforeID, ag.VehicleSnapshotAfterID, time.Now().UTC(), ag.ID)
	return err
}

func (r *agreementRepository) ListByRenter(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Agreement, int32, error) {
	offset := (page - 1) * pageSize
	base := fmt.Sprintf(`SELECT %s FROM agreements WHERE renter_id = $1`, agreementColumns)

	args := []interface{}{renterID}
	argIdx := 2
	if status != "" {
		base += " AND status = $2"
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + base + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	base += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, base, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	agreements, err := r.scanMany(rows)
	if err != nil {
		return nil, 0, err
	}
	return agreements, count, nil
}

func (r *agreementRepository) ListOverlapping(ctx context.Context, vehicleID int64, start, end time.Time) ([]domain.Agreement, error) {
	query := fmt.Sprintf(`SELECT %s FROM agreements
	          WHERE vehicle_id = $1 AND status != $2 AND rsvp_pickup_time < $3 AND rsvp_drop_off_time > $4`, agreementColumns)
	rows, err := r.db.QueryContext(ctx, query, vehicleID, domain.AgreementStatusVoid, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *agreementRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Agreement, error) {
	query := fmt.Sprintf(`SELECT %s FROM agreements
	          WHERE status = $1 AND actual_pickup_time IS NOT NULL AND actual_drop_off_time IS NULL AND rsvp_drop_off_time < $2`, agreementColumns)
	rows, err := r.db.QueryContext(ctx, query, domain.AgreementStatusRental, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *agreementRepository) scanOne(row rowScanner) (*domain.Agreement, error) {
	ag := &domain.Agreement{}
	var override decimal.NullDecimal
	err := row.Scan(
		&ag.ID, &ag.ConfirmationCode, &ag.Status, &ag.RenterID, &ag.VehicleID, &ag.ApartmentID, &ag.PaymentMethodID, &ag.LocationID,
		&ag.RsvpPickupTime, &ag.RsvpDropOffTime, &ag.ActualPickupTime, &ag.ActualDropOffTime,
		&ag.LiabilityProtection, &ag.LiabilityRate, &ag.DamageProtection, &ag.DamageRate,
		&ag.DurationRate, &ag.MSRPFactor, &ag.UtilizationFactor, &ag.TaxRateSnapshot,
		&ag.MileagePackageID, &override, &ag.DiscountAmount, &ag.PromoCodeID, &ag.PromoDiscount,
		&ag.VehicleSnapshotBeforeID, &ag.VehicleSnapshotAfterID, &ag.CreatedOn, &ag.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if override.Valid {
		ag.MileageRateOverride = &override.Decimal
	}
	return ag, nil
}

func (r *agreementRepository) scanMany(rows *sql.Rows) ([]domain.Agreement, error) {
	var agreements []domain.Agreement
	for rows.Next() {
		ag, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		agreements = append(agreements, *ag)
	}
	return agreements, rows.Err()
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
