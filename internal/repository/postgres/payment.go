package postgres

import (
	"context"
	"time"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/repository"
)

type paymentRepository struct {
	db dbtx
}

func NewPaymentRepository(db dbtx) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (agreement_id, renter_id, payment_method_id, status, amount, amount_authorized, note, reference_number, capture_before, is_deposit, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		p.AgreementID, p.RenterID, p.PaymentMethodID, p.Status, p.Amount, p.AmountAuthorized,
		p.Note, p.ReferenceNumber, p.CaptureBefore, p.IsDeposit, time.Now().UTC(),
	).Scan(&p.ID)
}

func (r *paymentRepository) ListOpenDeposits(ctx context.Context, agreementID int64) ([]domain.OpenDeposit, error) {
	query := `SELECT id, reference_number FROM payments
	          WHERE agreement_id = $1 AND is_deposit = TRUE AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, agreementID, domain.PaymentStatusRequiresCapture)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []domain.OpenDeposit
	for rows.Next() {
		var d domain.OpenDeposit
		if err := rows.Scan(&d.PaymentID, &d.ReferenceNumber); err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}

func (r *paymentRepository) ListExpiredHolds(ctx context.Context, asOf time.Time) ([]domain.OpenDeposit, error) {
	query := `SELECT id, reference_number FROM payments
	          WHERE is_deposit = TRUE AND status = $1 AND capture_before IS NOT NULL AND capture_before < $2`
	rows, err := r.db.QueryContext(ctx, query, domain.PaymentStatusRequiresCapture, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deposits []domain.OpenDeposit
	for rows.Next() {
		var d domain.OpenDeposit
		if err := rows.Scan(&d.PaymentID, &d.ReferenceNumber); err != nil {
			return nil, err
		}
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}

func (r *paymentRepository) MarkCanceled(ctx context.Context, paymentID int64) error {
	query := `UPDATE payments SET status = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, domain.PaymentStatusCanceled, paymentID)
	return err
}
