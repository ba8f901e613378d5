package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus mirrors the gateway's authorization lifecycle
type PaymentStatus string

const (
	PaymentStatusRequiresCapture PaymentStatus = "REQUIRES_CAPTURE"
	PaymentStatusSucceeded       PaymentStatus = "SUCCEEDED"
	PaymentStatusCanceled        PaymentStatus = "CANCELED"
)

// Payment records a single monetary event, optionally tied to an agreement.
// Every successful authorization produces exactly one row with
// ReferenceNumber set to the gateway transaction id.
type Payment struct {
	ID               int64           `json:"id"`
	AgreementID      *int64          `json:"agreement_id,omitempty"`
	RenterID         int64           `json:"renter_id"`
	PaymentMethodID  int64           `json:"payment_method_id"`
	Status           PaymentStatus   `json:"status"`
	Amount           decimal.Decimal `json:"amount"`
	AmountAuthorized decimal.Decimal `json:"amount_authorized"`
	Note             string          `json:"note"`
	ReferenceNumber  string          `json:"reference_number"`
	CaptureBefore    *time.Time      `json:"capture_before,omitempty"`
	IsDeposit        bool            `json:"is_deposit"`
	CreatedOn        time.Time       `json:"created_on"`
}

// OpenDeposit identifies a still-open deposit hold eligible for voiding
type OpenDeposit struct {
	PaymentID       int64  `json:"payment_id"`
	ReferenceNumber string `json:"reference_number"`
}
