package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/pricing"
)

// CreateAgreementParams carries everything locked in at reservation time
type CreateAgreementParams struct {
	VehicleID           int64
	PaymentMethodID     int64
	LocationID          int64
	RsvpPickupTime      time.Time
	RsvpDropOffTime     time.Time
	LiabilityProtection bool
	LiabilityRate       decimal.Decimal
	DamageProtection    bool
	DamageRate          decimal.Decimal
	DurationRate        decimal.Decimal
	UtilizationFactor   decimal.Decimal
	TaxRateSnapshot     decimal.Decimal
	MileagePackageID    *int64
	MileageRateOverride *decimal.Decimal
	DiscountAmount      decimal.Decimal
	PromoCodeID         *int64
	PromoDiscount       decimal.Decimal
	TaxIDs              []int64
}

// ChargeBreakdown itemizes a check-out or check-in bill
type ChargeBreakdown struct {
	BillableHours     decimal.Decimal      `json:"billable_hours"`
	CalculatedHours   decimal.Decimal      `json:"calculated_hours"`
	BillableDays      int64                `json:"billable_days"`
	DurationRevenue   decimal.Decimal      `json:"duration_revenue"`
	DiscountedRevenue decimal.Decimal      `json:"discounted_revenue"`
	MileageCost       decimal.Decimal      `json:"mileage_cost"`
	Taxes             pricing.TaxBreakdown `json:"taxes"`
	TotalShouldBill   decimal.Decimal      `json:"total_should_bill"`
	TotalAfterDeposit decimal.Decimal      `json:"total_after_deposit"`
}

// CheckResult is returned by both check-out and check-in
type CheckResult struct {
	Agreement *domain.Agreement `json:"agreement"`
	Payment   *domain.Payment   `json:"payment"`
	Breakdown ChargeBreakdown   `json:"breakdown"`
}

// RewardBalance reports the renter's free-hour standing for the current week
type RewardBalance struct {
	MaxAllowed decimal.Decimal `json:"max_allowed"`
	Used       decimal.Decimal `json:"used"`
	Remaining  decimal.Decimal `json:"remaining"`
	WeekStart  time.Time       `json:"week_start"`
	WeekEnd    time.Time       `json:"week_end"`
}

type AgreementService interface {
	CreateAgreement(ctx context.Context, renterID int64, params CreateAgreementParams) (*domain.Agreement, error)
	GetAgreement(ctx context.Context, renterID, agreementID int64) (*domain.Agreement, error)
	ListAgreements(ctx context.Context, renterID int64, status string, page, pageSize int32) ([]domain.Agreement, int32, error)
	CheckOut(ctx context.Context, renterID, agreementID, snapshotID int64, rewardHours decimal.Decimal) (*CheckResult, error)
	CheckIn(ctx context.Context, renterID, agreementID, snapshotID int64, rewardHours decimal.Decimal) (*CheckResult, error)
	CancelAgreement(ctx context.Context, renterID, agreementID int64) (*domain.Agreement, error)
}

type RewardService interface {
	GetBalance(ctx context.Context, renterID int64) (*RewardBalance, error)
}

// AuthorizeParams describes a manual-capture authorization request.
// Amounts crossing the gateway boundary are integer minor currency units.
type AuthorizeParams struct {
	CustomerRef      string
	PaymentMethodRef string
	AmountMinor      int64
	Description      string
	StatementSuffix  string
	IdempotencyKey   string
}

// Authorization is the gateway's answer to a successful authorize call
type Authorization struct {
	Reference     string
	Status        domain.PaymentStatus
	CaptureBefore time.Time
}

// PaymentGateway is the port to the external card processor. Declines come
// back as *domain.CardDeclinedError, everything else as *domain.GatewayError.
type PaymentGateway interface {
	Authorize(ctx context.Context, params AuthorizeParams) (*Authorization, error)
	Cancel(ctx context.Context, reference string) error
}

// VehicleState is the telematics provider's view of a vehicle
type VehicleState string

const (
	VehicleStateOnline  VehicleState = "online"
	VehicleStateOffline VehicleState = "offline"
	VehicleStateUnknown VehicleState = "unknown"
)

const (
	VehicleCommandLock   = "door_lock"
	VehicleCommandUnlock = "door_unlock"
)

// VehicleCommander is the port to remote vehicle hardware. All calls are
// best effort; callers log failures and never surface them to renters.
type VehicleCommander interface {
	QueryState(ctx context.Context, telematicsRef string) (VehicleState, error)
	Wake(ctx context.Context, telematicsRef string) error
	SendCommand(ctx context.Context, telematicsRef, command string) error
}

// CommandDispatcher fires a vehicle command sequence detached from the
// calling request. Implemented by telematics.Dispatcher.
type CommandDispatcher interface {
	DispatchUnlock(agreementID int64, telematicsRef string)
	DispatchLock(agreementID int64, telematicsRef string)
}

type EmailService interface {
	SendCheckOutReceipt(ctx context.Context, email, name, confirmationCode string, total decimal.Decimal) error
	SendCheckInReceipt(ctx context.Context, email, name, confirmationCode string, total decimal.Decimal) error
	SendOverdueNotice(ctx context.Context, email, name, confirmationCode string, dueBack time.Time) error
	SendRewardSummary(ctx context.Context, email, name string, usedHours decimal.Decimal) error
	// SendBillingAlert escalates a charged-but-not-recorded discrepancy to
	// the operations inbox.
	SendBillingAlert(ctx context.Context, subject, detail string) error
}
