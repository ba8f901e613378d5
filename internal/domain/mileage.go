package domain

import "github.com/shopspring/decimal"

// MileagePackage is a named bundle of miles sold at a discounted fraction
// of the base per-mile rate.
type MileagePackage struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	TotalMiles   decimal.Decimal `json:"total_miles"`
	DiscountRate decimal.Decimal `json:"discount_rate"` // percent of base rate
	Active       bool            `json:"active"`
}
