package domain

import "github.com/shopspring/decimal"

type TaxType string

const (
	TaxTypeFixed   TaxType = "FIXED"   // flat dollar amount
	TaxTypePercent TaxType = "PERCENT" // fraction of the taxable base
	TaxTypeDaily   TaxType = "DAILY"   // rate per billable day
)

// Tax is a named multiplier applied to an agreement's taxable base. The tax
// set is locked in at agreement creation via a join table.
type Tax struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Type       TaxType         `json:"type"`
	Multiplier decimal.Decimal `json:"multiplier"`
}
