package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/pricing"
	"urbandrive-backend/internal/repository"
	"urbandrive-backend/internal/rewards"
)

const confirmationCodeAttempts = 5

// BillingPolicy carries the billing constants resolved from configuration
type BillingPolicy struct {
	Deposit           decimal.Decimal
	SnapshotFreshness time.Duration
	StatementSuffix   string
}

// AgreementServiceDeps wires the state machine's collaborators
type AgreementServiceDeps struct {
	Agreements repository.AgreementRepository
	Payments   repository.PaymentRepository
	Vehicles   repository.VehicleRepository
	Apartments repository.ApartmentRepository
	Renters    repository.RenterRepository
	Mileage    repository.MileagePackageRepository
	Tx         repository.TxRunner
	Gateway    PaymentGateway
	Dispatcher CommandDispatcher
	Email      EmailService
	Billing    BillingPolicy
}

type agreementService struct {
	agreements repository.AgreementRepository
	payments   repository.PaymentRepository
	vehicles   repository.VehicleRepository
	apartments repository.ApartmentRepository
	renters    repository.RenterRepository
	mileage    repository.MileagePackageRepository
	tx         repository.TxRunner
	gateway    PaymentGateway
	dispatcher CommandDispatcher
	email      EmailService
	billing    BillingPolicy
}

func NewAgreementService(deps AgreementServiceDeps) AgreementService {
	return &agreementService{
		agreements: deps.Agreements,
		payments:   deps.Payments,
		vehicles:   deps.Vehicles,
		apartments: deps.Apartments,
		renters:    deps.Renters,
		mileage:    deps.Mileage,
		tx:         deps.Tx,
		gateway:    deps.Gateway,
		dispatcher: deps.Dispatcher,
		email:      deps.Email,
		billing:    deps.Billing,
	}
}

// CreateAgreement reserves a vehicle: availability check, unique confirmation
// code, deposit hold on the renter's card, and the agreement plus deposit
// Payment row persisted in one transaction.
func (s *agreementService) CreateAgreement(ctx context.Context, renterID int64, params CreateAgreementParams) (*domain.Agreement, error) {
	now := time.Now().UTC()
	if !params.RsvpPickupTime.Before(params.RsvpDropOffTime) {
		return nil, &domain.ValidationError{
			Title:   "Invalid Reservation Window",
			Message: "drop-off time must be after pickup time",
		}
	}
	if params.RsvpDropOffTime.Before(now) {
		return nil, &domain.ValidationError{
			Title:   "Invalid Reservation Window",
			Message: "reservation window is in the past",
		}
	}

	renter, err := s.renters.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicles.GetByID(ctx, params.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.ApartmentID != renter.ApartmentID {
		return nil, &domain.NotAllowedError{
			Title:   "Vehicle Not Available",
			Message: "this vehicle does not belong to your building",
		}
	}

	ag := &domain.Agreement{
		Status:              domain.AgreementStatusRental,
		RenterID:            renterID,
		VehicleID:           vehicle.ID,
		ApartmentID:         renter.ApartmentID,
		PaymentMethodID:     params.PaymentMethodID,
		LocationID:          params.LocationID,
		RsvpPickupTime:      params.RsvpPickupTime.UTC(),
		RsvpDropOffTime:     params.RsvpDropOffTime.UTC(),
		LiabilityProtection: params.LiabilityProtection,
		LiabilityRate:       params.LiabilityRate,
		DamageProtection:    params.DamageProtection,
		DamageRate:          params.DamageRate,
		DurationRate:        params.DurationRate,
		MSRPFactor:          vehicle.MSRPFactor,
		UtilizationFactor:   params.UtilizationFactor,
		TaxRateSnapshot:     params.TaxRateSnapshot,
		MileagePackageID:    params.MileagePackageID,
		MileageRateOverride: params.MileageRateOverride,
		DiscountAmount:      params.DiscountAmount,
		PromoCodeID:         params.PromoCodeID,
		PromoDiscount:       params.PromoDiscount,
	}

	err = s.tx.WithinTx(ctx, func(r repository.TxRepositories) error {
		overlapping, err := r.Agreements.ListOverlapping(ctx, vehicle.ID, ag.RsvpPickupTime, ag.RsvpDropOffTime)
		if err != nil {
			return fmt.Errorf("availability check: %w", err)
		}
		if len(overlapping) > 0 {
			return &domain.NotAllowedError{
				Title:   "Vehicle Unavailable",
				Message: "the vehicle is already reserved for part of this window",
			}
		}

		code, err := uniqueConfirmationCode(ctx, r.Agreements)
		if err != nil {
			return err
		}
		ag.ConfirmationCode = code

		if err := r.Agreements.Create(ctx, ag); err != nil {
			return fmt.Errorf("create agreement: %w", err)
		}
		if len(params.TaxIDs) > 0 {
			if err := r.Taxes.AttachToAgreement(ctx, ag.ID, params.TaxIDs); err != nil {
				return fmt.Errorf("attach taxes: %w", err)
			}
		}

		auth, err := s.gateway.Authorize(ctx, AuthorizeParams{
			CustomerRef:      renter.GatewayCustomerRef,
			PaymentMethodRef: renter.DefaultPaymentMethodRef,
			AmountMinor:      pricing.ToMinorUnits(s.billing.Deposit),
			Description:      "Reservation deposit " + ag.ConfirmationCode,
			StatementSuffix:  s.billing.StatementSuffix,
		})
		if err != nil {
			return fmt.Errorf("deposit authorization: %w", err)
		}

		payment := &domain.Payment{
			AgreementID:      &ag.ID,
			RenterID:         renterID,
			PaymentMethodID:  params.PaymentMethodID,
			Status:           auth.Status,
			Amount:           decimal.Zero,
			AmountAuthorized: s.billing.Deposit,
			Note:             "reservation deposit",
			ReferenceNumber:  auth.Reference,
			CaptureBefore:    &auth.CaptureBefore,
			IsDeposit:        true,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return s.chargedNotRecorded(ctx, ag.ID, auth.Reference, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithAgreement(ag.ID).Info("agreement created",
		"confirmation_code", ag.ConfirmationCode, "vehicle_id", vehicle.ID)
	return ag, nil
}

func (s *agreementService) GetAgreement(ctx context.Context, renterID, agreementID int64) (*domain.Agreement, error) {
	ag, err := s.agreements.GetByID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if ag.RenterID != renterID {
		return nil, domain.ErrNotFound
	}
	return ag, nil
}

func (s *agreementService) ListAgreements(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Agreement, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.agreements.ListByRenter(ctx, renterID, status, page, pageSize)
}

// CheckOut moves a reserved agreement to active: precondition checks against
// the pickup snapshot, reward validation, the full billing computation, a new
// manual-capture authorization, and the agreement/payment/reward writes in
// one transaction holding the agreement row lock.
func (s *agreementService) CheckOut(ctx context.Context, renterID, agreementID, snapshotID int64, rewardHours decimal.Decimal) (*CheckResult, error) {
	if rewardHours.Sign() < 0 {
		return nil, &domain.ValidationError{
			Title:   "Invalid Reward Hours",
			Message: "reward hours cannot be negative",
		}
	}

	renter, err := s.renters.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var result *CheckResult

	err = s.tx.WithinTx(ctx, func(r repository.TxRepositories) error {
		ag, err := r.Agreements.GetByIDForUpdate(ctx, agreementID)
		if err != nil {
			return err
		}
		if ag.RenterID != renterID {
			return domain.ErrNotFound
		}
		if ag.Status != domain.AgreementStatusRental {
			return &domain.NotAllowedError{
				Title:   "Agreement Not Active",
				Message: "this agreement has been voided",
			}
		}
		if ag.IsCheckedOut() || ag.IsClosed() {
			return &domain.NotAllowedError{
				Title:   "Agreement Already Checked Out",
				Message: "the vehicle for this agreement has already been picked up",
			}
		}

		snap, err := s.vehicles.GetSnapshot(ctx, snapshotID)
		if err != nil {
			return err
		}
		if snap.VehicleID != ag.VehicleID {
			return &domain.NotAllowedError{
				Title:   "Snapshot Mismatch",
				Message: "the snapshot does not belong to this agreement's vehicle",
			}
		}
		if snap.CaptureTime.Before(ag.RsvpPickupTime) || !snap.CaptureTime.Before(ag.RsvpDropOffTime) {
			return &domain.NotAllowedError{
				Title:   "Snapshot Outside Reservation Window",
				Message: "the snapshot was not taken during the reservation window",
			}
		}
		if now.Sub(snap.CaptureTime) > s.billing.SnapshotFreshness {
			return &domain.NotAllowedError{
				Title:   "Snapshot Expired",
				Message: "the vehicle snapshot is too old, please take a new one",
			}
		}

		apartment, err := s.apartments.GetByID(ctx, ag.ApartmentID)
		if err != nil {
			return err
		}

		// Reward usage is summed inside the same transaction, after the
		// agreement row lock, so same-renter redemptions serialize.
		ledger := rewards.NewLedger(r.Rewards)
		if err := ledger.Validate(ctx, renter, apartment, reservationHours(ag), rewardHours, now); err != nil {
			return err
		}

		breakdown, err := s.computeCharges(ctx, r.Taxes, ag, apartment, rewardHours)
		if err != nil {
			return err
		}

		auth, err := s.gateway.Authorize(ctx, AuthorizeParams{
			CustomerRef:      renter.GatewayCustomerRef,
			PaymentMethodRef: renter.DefaultPaymentMethodRef,
			AmountMinor:      pricing.ToMinorUnits(breakdown.TotalAfterDeposit),
			Description:      "Rental charge " + ag.ConfirmationCode,
			StatementSuffix:  s.billing.StatementSuffix,
		})
		if err != nil {
			return err
		}

		payment := &domain.Payment{
			AgreementID:      &ag.ID,
			RenterID:         renterID,
			PaymentMethodID:  ag.PaymentMethodID,
			Status:           auth.Status,
			Amount:           decimal.Zero,
			AmountAuthorized: breakdown.TotalAfterDeposit,
			Note:             "check-out charge",
			ReferenceNumber:  auth.Reference,
			CaptureBefore:    &auth.CaptureBefore,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return s.chargedNotRecorded(ctx, ag.ID, auth.Reference, err)
		}

		if rewardHours.Sign() > 0 {
			reward := &domain.RewardTransaction{
				AgreementID:     &ag.ID,
				RenterID:        renterID,
				Duration:        rewardHours,
				TransactionTime: now,
			}
			if err := r.Rewards.Create(ctx, reward); err != nil {
				return s.chargedNotRecorded(ctx, ag.ID, auth.Reference, err)
			}
		}

		pickup := now
		ag.VehicleSnapshotBeforeID = &snap.ID
		ag.ActualPickupTime = &pickup
		if err := r.Agreements.Update(ctx, ag); err != nil {
			return s.chargedNotRecorded(ctx, ag.ID, auth.Reference, err)
		}

		result = &CheckResult{Agreement: ag, Payment: payment, Breakdown: *breakdown}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithAgreement(agreementID).Info("check-out complete",
		"total_authorized", result.Breakdown.TotalAfterDeposit.String(),
		"reference", result.Payment.ReferenceNumber)

	s.afterSettlement(result.Agreement, VehicleCommandUnlock)
	s.sendReceipt(result, renter, false)
	return result, nil
}

// CheckIn closes an active agreement. Financials mirror CheckOut; the
// snapshot must fall between actual pickup and now, with no freshness bound,
// and the drop-off snapshot and timestamp land in their own fields. A new
// authorization covers the final amount and every still-open deposit hold is
// voided afterwards.
func (s *agreementService) CheckIn(ctx context.Context, renterID, agreementID, snapshotID int64, rewardHours decimal.Decimal) (*CheckResult, error) {
	if rewardHours.Sign() < 0 {
		return nil, &domain.ValidationError{
			Title:   "Invalid Reward Hours",
			Message: "reward hours cannot be negative",
		}
	}

	renter, err := s.renters.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var result *CheckResult

	err = s.tx.WithinTx(ctx, func(r repository.TxRepositories) error {
		ag, err := r.Agreements.GetByIDForUpdate(ctx, agreementID)
		if err != nil {
			return err
		}
		if ag.RenterID != renterID {
			return domain.ErrNotFound
		}
		if ag.Status != domain.AgreementStatusRental {
			return &domain.NotAllowedError{
				Title:   "Agreement Not Active",
				Message: "this agreement has been voided",
			}
		}
		if !ag.IsCheckedOut() {
			return &domain.NotAllowedError{
				Title:   "Agreement Not Checked Out",
				Message: "the vehicle has not been picked up yet",
			}
		}
		if ag.IsClosed() {
			return &domain.NotAllowedError{
				Title:   "Agreement Already Closed",
				Message: "this rental has already been checked in",
			}
		}

		snap, err := s.vehicles.GetSnapshot(ctx, snapshotID)
		if err != nil {
			return err
		}
		if snap.VehicleID != ag.VehicleID {
			return &domain.NotAllowedError{
				Title:   "Snapshot Mismatch",
				Message: "the snapshot does not belong to this agreement's vehicle",
			}
		}
		if snap.CaptureTime.Before(*ag.ActualPickupTime) || snap.CaptureTime.After(now) {
			return &domain.NotAllowedError{
				Title:   "Snapshot Outside Rental Period",
				Message: "the snapshot was not taken during the rental",
			}
		}

		apartment, err := s.apartments.GetByID(ctx, ag.ApartmentID)
		if err != nil {
			return err
		}

		ledger := rewards.NewLedger(r.Rewards)
		if err := ledger.Validate(ctx, renter, apartment, reservationHours(ag), rewardHours, now); err != nil {
			return err
		}

		breakdown, err := s.computeCharges(ctx, r.Taxes, ag, apartment, rewardHours)
		if err != nil {
			return err
		}

		auth, err := s.gateway.Authorize(ctx, AuthorizeParams{
			CustomerRef:      renter.GatewayCustomerRef,
			PaymentMethodRef: renter.DefaultPaymentMethodRef,
			AmountMinor:      pricing.ToMinorUnits(breakdown.TotalAfterDeposit),
			Description:      "Final rental charge " + ag.ConfirmationCode,
			StatementSuffix:  s.billing.StatementSuffix,
		})
		if err != nil {
			return err
		}

		payment := &domain.Payment{
			AgreementID:      &ag.ID,
			RenterID:         renterID,
			PaymentMethodID:  ag.PaymentMethodID,
			Status:           auth.Status,
			Amount:           decimal.Zero,
			AmountAuthorized: breakdown.TotalAfterDeposit,
			Note:             "check-in charge",
			ReferenceNumber:  auth.Reference,
			CaptureBefore:    &auth.CaptureBefore,
		}
		if err := r.Payments.Create(ctx, payment); err != nil {
			return s.chargedNotRecorded(ctx, ag.ID, auth.Reference, err)
		}

		if rewardHours.Sign() > 0 {
			reward := &domain.RewardTransaction{
				AgreementID:     &ag.ID,
				RenterID:        renterID,
				Duration:        rewardHours,
				TransactionTime: now,
			}
			if err := r.Rewards.Create(ctx, reward); err != nil {
				return s.chargedNotRecorded(ctx, ag.ID, auth.Reference, err)
			}
		}

		dropOff := now
		ag.VehicleSnapshotAfterID = &snap.ID
		ag.ActualDropOffTime = &dropOff
		if err := r.Agreements.Update(ctx, ag); err != nil {
			return s.chargedNotRecorded(ctx, ag.ID, auth.Reference, err)
		}

		result = &CheckResult{Agreement: ag, Payment: payment, Breakdown: *breakdown}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithAgreement(agreementID).Info("check-in complete",
		"total_authorized", result.Breakdown.TotalAfterDeposit.String(),
		"reference", result.Payment.ReferenceNumber)

	s.afterSettlement(result.Agreement, VehicleCommandLock)
	s.sendReceipt(result, renter, true)
	return result, nil
}

// CancelAgreement voids a reservation that has not been picked up and
// releases its deposit hold.
func (s *agreementService) CancelAgreement(ctx context.Context, renterID, agreementID int64) (*domain.Agreement, error) {
	var canceled *domain.Agreement
	err := s.tx.WithinTx(ctx, func(r repository.TxRepositories) error {
		ag, err := r.Agreements.GetByIDForUpdate(ctx, agreementID)
		if err != nil {
			return err
		}
		if ag.RenterID != renterID {
			return domain.ErrNotFound
		}
		if ag.Status != domain.AgreementStatusRental {
			return &domain.NotAllowedError{
				Title:   "Agreement Not Active",
				Message: "this agreement has already been voided",
			}
		}
		if ag.IsCheckedOut() {
			return &domain.NotAllowedError{
				Title:   "Agreement In Progress",
				Message: "a rental that has started cannot be canceled",
			}
		}

		ag.Status = domain.AgreementStatusVoid
		if err := r.Agreements.Update(ctx, ag); err != nil {
			return fmt.Errorf("void agreement: %w", err)
		}
		canceled = ag
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithAgreement(agreementID).Info("agreement canceled")
	go s.voidOpenDeposits(agreementID)
	return canceled, nil
}

// computeCharges runs the full billing computation off the agreement's
// locked-in rate snapshots. Discounts are subtractive and the discounted
// revenue clamps at zero rather than going negative.
func (s *agreementService) computeCharges(ctx context.Context, taxes repository.TaxRepository, ag *domain.Agreement, apartment *domain.Apartment, rewardHours decimal.Decimal) (*ChargeBreakdown, error) {
	billable := pricing.BillableHours(ag.ReservationDuration(), rewardHours)
	calc := pricing.CalculatedDurationHours(billable)
	revenue := pricing.DurationRevenue(calc, ag.DurationRate, ag.MSRPFactor, ag.UtilizationFactor)

	discounted := revenue.Sub(ag.DiscountAmount).Sub(ag.PromoDiscount)
	if discounted.Sign() < 0 {
		discounted = decimal.Zero
	}

	mileage := decimal.Zero
	if ag.MileagePackageID != nil {
		pkg, err := s.mileage.GetByID(ctx, *ag.MileagePackageID)
		if err != nil {
			return nil, fmt.Errorf("mileage package: %w", err)
		}
		if pkg.Active {
			base := pricing.MileageBaseRate(ag.MileageRateOverride, ag.DurationRate, ag.MSRPFactor, apartment.MileageConversion)
			mileage = pricing.MileagePackageCost(base, pkg.TotalMiles, pkg.DiscountRate)
		}
	}

	days := pricing.BillableDays(billable)

	// Insurance premium billing is not live yet; the taxable base carries a
	// zero placeholder until protection products are priced.
	insurance := decimal.Zero
	taxable := discounted.Add(mileage).Add(insurance)

	taxList, err := taxes.ListForAgreement(ctx, ag.ID)
	if err != nil {
		return nil, fmt.Errorf("load taxes: %w", err)
	}
	taxBreakdown := pricing.ApplyTaxes(taxable, days, taxList)

	total := taxable.Add(taxBreakdown.Total())
	return &ChargeBreakdown{
		BillableHours:     billable,
		CalculatedHours:   calc,
		BillableDays:      days,
		DurationRevenue:   revenue,
		DiscountedRevenue: discounted,
		MileageCost:       mileage,
		Taxes:             taxBreakdown,
		TotalShouldBill:   total,
		TotalAfterDeposit: total.Add(s.billing.Deposit),
	}, nil
}

// chargedNotRecorded is the partial-failure path: the gateway holds funds
// but the local write failed and the transaction is rolling back. Alert
// loudly; reconciliation against the gateway is an operator action.
func (s *agreementService) chargedNotRecorded(ctx context.Context, agreementID int64, reference string, cause error) error {
	logger.BillingAlert("charged but not recorded",
		"agreement_id", agreementID, "reference", reference, "error", cause)
	if s.email != nil {
		detail := fmt.Sprintf("agreement %d, gateway reference %s: %v", agreementID, reference, cause)
		if err := s.email.SendBillingAlert(ctx, "Charged but not recorded", detail); err != nil {
			logger.Error("billing alert email failed", "agreement_id", agreementID, "error", err)
		}
	}
	return fmt.Errorf("record payment %s: %w", reference, cause)
}

// afterSettlement runs the detached post-commit side effects: releasing
// superseded deposit holds and the vehicle door command. Neither blocks or
// fails the HTTP response.
func (s *agreementService) afterSettlement(ag *domain.Agreement, command string) {
	go s.voidOpenDeposits(ag.ID)

	vehicle, err := s.vehicles.GetByID(context.Background(), ag.VehicleID)
	if err != nil {
		logger.WithAgreement(ag.ID).Error("vehicle lookup for door command failed", "error", err)
		return
	}
	switch command {
	case VehicleCommandUnlock:
		s.dispatcher.DispatchUnlock(ag.ID, vehicle.TelematicsRef)
	case VehicleCommandLock:
		s.dispatcher.DispatchLock(ag.ID, vehicle.TelematicsRef)
	}
}

// voidOpenDeposits cancels every still-open deposit hold for the agreement.
// Best effort: a hold that fails to void is retried by the expired-hold job.
func (s *agreementService) voidOpenDeposits(agreementID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log := logger.WithAgreement(agreementID)
	deposits, err := s.payments.ListOpenDeposits(ctx, agreementID)
	if err != nil {
		log.Error("listing open deposits failed", "error", err)
		return
	}
	for _, d := range deposits {
		if err := s.gateway.Cancel(ctx, d.ReferenceNumber); err != nil {
			log.Error("voiding deposit hold failed", "reference", d.ReferenceNumber, "error", err)
			continue
		}
		if err := s.payments.MarkCanceled(ctx, d.PaymentID); err != nil {
			log.Error("marking deposit canceled failed", "payment_id", d.PaymentID, "error", err)
			continue
		}
		log.Info("deposit hold voided", "reference", d.ReferenceNumber)
	}
}

func (s *agreementService) sendReceipt(result *CheckResult, renter *domain.Renter, checkIn bool) {
	if s.email == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		if checkIn {
			err = s.email.SendCheckInReceipt(ctx, renter.Email, renter.Name,
				result.Agreement.ConfirmationCode, result.Breakdown.TotalShouldBill)
		} else {
			err = s.email.SendCheckOutReceipt(ctx, renter.Email, renter.Name,
				result.Agreement.ConfirmationCode, result.Breakdown.TotalShouldBill)
		}
		if err != nil {
			logger.WithAgreement(result.Agreement.ID).Error("receipt email failed", "error", err)
		}
	}()
}

// reservationHours converts the reserved window to decimal hours with
// minute precision for reward validation.
func reservationHours(ag *domain.Agreement) decimal.Decimal {
	minutes := int64(ag.ReservationDuration() / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60))
}

// uniqueConfirmationCode generates codes until one is free. Collisions are
// rare with a 36^8 space, so a handful of attempts is plenty.
func uniqueConfirmationCode(ctx context.Context, agreements repository.AgreementRepository) (string, error) {
	for i := 0; i < confirmationCodeAttempts; i++ {
		code, err := domain.NewConfirmationCode()
		if err != nil {
			return "", err
		}
		_, err = agreements.GetByConfirmationCode(ctx, code)
		if errors.Is(err, domain.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("confirmation code lookup: %w", err)
		}
	}
	return "", fmt.Errorf("could not generate a unique confirmation code after %d attempts", confirmationCodeAttempts)
}
