package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RewardTransaction records consumption of free reward hours. The sum of
// Duration for a renter within a calendar week (Monday 00:00 UTC inclusive
// to the next Monday exclusive) must never exceed the plan-tier allowance.
type RewardTransaction struct {
	ID              int64           `json:"id"`
	AgreementID     *int64          `json:"agreement_id,omitempty"`
	RenterID        int64           `json:"renter_id"`
	Duration        decimal.Decimal `json:"duration"` // hours
	TransactionTime time.Time       `json:"transaction_time"`
}
