package pricing

import (
	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
)

// TaxBreakdown is the result of applying an agreement's locked-in tax set
type TaxBreakdown struct {
	Fixed   decimal.Decimal `json:"fixed"`
	Percent decimal.Decimal `json:"percent"`
	Daily   decimal.Decimal `json:"daily"`
}

// Total sums the three tax categories
func (b TaxBreakdown) Total() decimal.Decimal {
	return b.Fixed.Add(b.Percent).Add(b.Daily)
}

// ApplyTaxes folds a tax set over the taxable base. The base for percent
// taxes is the post-discount, post-mileage revenue; taxes never compound
// on each other. Order of the input slice does not affect the result.
func ApplyTaxes(taxableBase decimal.Decimal, billableDays int64, taxes []domain.Tax) TaxBreakdown {
	days := decimal.NewFromInt(billableDays)
	var b TaxBreakdown
	for _, t := range taxes {
		switch t.Type {
		case domain.TaxTypeFixed:
			b.Fixed = b.Fixed.Add(t.Multiplier)
		case domain.TaxTypePercent:
			b.Percent = b.Percent.Add(taxableBase.Mul(t.Multiplier))
		case domain.TaxTypeDaily:
			b.Daily = b.Daily.Add(days.Mul(t.Multiplier))
		}
	}
	return b
}
