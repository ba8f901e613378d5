package domain

import "github.com/shopspring/decimal"

// Apartment configures a building's car-sharing program, including the
// weekly free-hour allotment per plan tier. A nil allotment means the tier
// is not configured there and resolution falls back to the next tier down.
type Apartment struct {
	ID                int64            `json:"id"`
	Name              string           `json:"name"`
	FreeHours         *decimal.Decimal `json:"free_hours,omitempty"`
	SilverHours       *decimal.Decimal `json:"silver_hours,omitempty"`
	GoldHours         *decimal.Decimal `json:"gold_hours,omitempty"`
	PlatinumHours     *decimal.Decimal `json:"platinum_hours,omitempty"`
	MileageConversion decimal.Decimal  `json:"mileage_conversion"`
}
