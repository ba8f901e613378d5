package domain

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

type AgreementStatus string

const (
	AgreementStatusRental AgreementStatus = "RENTAL"
	AgreementStatusVoid   AgreementStatus = "VOID"
)

const confirmationCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ConfirmationCodeLength is the fixed length of agreement confirmation codes
const ConfirmationCodeLength = 8

// Agreement is one rental contract between a renter and a vehicle. It is the
// aggregate root for a rental: Payments and RewardTransactions reference it
// but are owned by the repository.
type Agreement struct {
	ID               int64           `json:"id"`
	ConfirmationCode string          `json:"confirmation_code"`
	Status           AgreementStatus `json:"status"`
	RenterID         int64           `json:"renter_id"`
	VehicleID        int64           `json:"vehicle_id"`
	ApartmentID      int64           `json:"apartment_id"`
	PaymentMethodID  int64           `json:"payment_method_id"`
	LocationID       int64           `json:"location_id"`

	RsvpPickupTime    time.Time  `json:"rsvp_pickup_time"`
	RsvpDropOffTime   time.Time  `json:"rsvp_drop_off_time"`
	ActualPickupTime  *time.Time `json:"actual_pickup_time,omitempty"`
	ActualDropOffTime *time.Time `json:"actual_drop_off_time,omitempty"`

	// Rate snapshot fields captured at agreement creation time.
	// All billing calculations use these snapshots, not live vehicle rates.
	LiabilityProtection bool            `json:"liability_protection"`
	LiabilityRate       decimal.Decimal `json:"liability_rate"`
	DamageProtection    bool            `json:"damage_protection"`
	DamageRate          decimal.Decimal `json:"damage_rate"`
	DurationRate        decimal.Decimal `json:"duration_rate"`
	MSRPFactor          decimal.Decimal `json:"msrp_factor"`
	UtilizationFactor   decimal.Decimal `json:"utilization_factor"`
	TaxRateSnapshot     decimal.Decimal `json:"tax_rate_snapshot"`

	MileagePackageID    *int64           `json:"mileage_package_id,omitempty"`
	MileageRateOverride *decimal.Decimal `json:"mileage_rate_override,omitempty"`
	DiscountAmount      decimal.Decimal  `json:"discount_amount"`
	PromoCodeID         *int64           `json:"promo_code_id,omitempty"`
	PromoDiscount       decimal.Decimal  `json:"promo_discount"`

	VehicleSnapshotBeforeID *int64 `json:"vehicle_snapshot_before_id,omitempty"`
	VehicleSnapshotAfterID  *int64 `json:"vehicle_snapshot_after_id,omitempty"`

	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// ReservationDuration returns the length of the reserved window. Billing is
// keyed off this, never off the actual pickup/drop-off timestamps.
func (a *Agreement) ReservationDuration() time.Duration {
	return a.RsvpDropOffTime.Sub(a.RsvpPickupTime)
}

// IsCheckedOut reports whether the renter has picked up the vehicle
func (a *Agreement) IsCheckedOut() bool {
	return a.ActualPickupTime != nil
}

// IsClosed reports whether the rental has been checked in
func (a *Agreement) IsClosed() bool {
	return a.ActualDropOffTime != nil
}

// OverlapsWindow reports whether the reservation overlaps [start, end)
func (a *Agreement) OverlapsWindow(start, end time.Time) bool {
	return a.RsvpPickupTime.Before(end) && start.Before(a.RsvpDropOffTime)
}

// NewConfirmationCode generates a random 8-character code from [0-9A-Z].
// Uniqueness is enforced by the caller via retry against the repository.
func NewConfirmationCode() (string, error) {
	code := make([]byte, ConfirmationCodeLength)
	max := big.NewInt(int64(len(confirmationCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = confirmationCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
