package domain

import "time"

type PlanTier string

const (
	PlanTierFree     PlanTier = "FREE"
	PlanTierSilver   PlanTier = "SILVER"
	PlanTierGold     PlanTier = "GOLD"
	PlanTierPlatinum PlanTier = "PLATINUM"
)

type Renter struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	ApartmentID int64    `json:"apartment_id"`
	PlanTier    PlanTier `json:"plan_tier"`
	// PlanRenewalDate is stored as yyyy-mm-dd. A malformed value is data
	// corruption and surfaces as PlanDateParseError.
	PlanRenewalDate         string `json:"plan_renewal_date"`
	GatewayCustomerRef      string `json:"gateway_customer_ref"`
	DefaultPaymentMethodRef string `json:"default_payment_method_ref"`
}

// PlanActive reports whether the renter's paid plan is current as of now
func (r *Renter) PlanActive(now time.Time) (bool, error) {
	if r.PlanTier == PlanTierFree {
		return false, nil
	}
	if r.PlanRenewalDate == "" {
		return false, nil
	}
	renewal, err := time.ParseInLocation("2006-01-02", r.PlanRenewalDate, time.UTC)
	if err != nil {
		return false, &PlanDateParseError{RenterID: r.ID, Value: r.PlanRenewalDate, Err: err}
	}
	// The plan covers through the end of the renewal date.
	return !now.After(renewal.AddDate(0, 0, 1)), nil
}
