// Package pricing implements the tiered duration-rate calculator and tax
// aggregation for rental agreements. All arithmetic is exact decimal;
// binary floating point never touches money here.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	minutesPerHour = decimal.NewFromInt(60)
	hoursPerDay    = decimal.NewFromInt(24)

	tierOneCap    = decimal.NewFromInt(8)   // full rate through hour 8
	tierTwoCap    = decimal.NewFromInt(160) // hours 9-168
	tierTwoRate   = decimal.RequireFromString("0.25")
	tierThreeRate = decimal.RequireFromString("0.15")
)

// BillableHours converts a reservation duration to billable hours net of
// redeemed reward hours. Redeemed minutes are capped at the total duration
// and the result never goes negative.
func BillableHours(total time.Duration, rewardHours decimal.Decimal) decimal.Decimal {
	totalMinutes := decimal.NewFromInt(int64(total / time.Minute))
	if totalMinutes.Sign() <= 0 {
		return decimal.Zero
	}

	rewardMinutes := rewardHours.Mul(minutesPerHour)
	if rewardMinutes.Sign() < 0 {
		rewardMinutes = decimal.Zero
	}
	if rewardMinutes.GreaterThan(totalMinutes) {
		rewardMinutes = totalMinutes
	}

	return totalMinutes.Sub(rewardMinutes).Div(minutesPerHour)
}

// CalculatedDurationHours applies tiered pricing to billable hours: the
// first 8 hours at full rate, hours 9 through 168 at a quarter rate, and
// anything beyond the first week at 0.15.
func CalculatedDurationHours(billable decimal.Decimal) decimal.Decimal {
	if billable.Sign() <= 0 {
		return decimal.Zero
	}

	tier1 := decimal.Min(billable, tierOneCap)

	tier2 := billable.Sub(tierOneCap)
	if tier2.Sign() < 0 {
		tier2 = decimal.Zero
	} else if tier2.GreaterThan(tierTwoCap) {
		tier2 = tierTwoCap
	}

	tier3 := billable.Sub(tierOneCap).Sub(tierTwoCap)
	if tier3.Sign() < 0 {
		tier3 = decimal.Zero
	}

	return tier1.Add(tier2.Mul(tierTwoRate)).Add(tier3.Mul(tierThreeRate))
}

// DurationRevenue computes the duration charge from calculated hours and
// the agreement's locked-in rate factors.
func DurationRevenue(calcHours, durationRate, msrpFactor, utilizationFactor decimal.Decimal) decimal.Decimal {
	return calcHours.Mul(durationRate).Mul(msrpFactor).Mul(utilizationFactor)
}

// BillableDays returns ceil(billableHours / 24). Used only for daily tax
// calculation, never for the pricing tiers.
func BillableDays(billable decimal.Decimal) int64 {
	if billable.Sign() <= 0 {
		return 0
	}
	return billable.Div(hoursPerDay).Ceil().IntPart()
}

// MileageBaseRate resolves the per-mile base rate for a mileage package:
// an explicit override when present, otherwise the agreement's duration
// rate scaled by the MSRP factor and the apartment's mileage conversion.
func MileageBaseRate(override *decimal.Decimal, durationRate, msrpFactor, mileageConversion decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return durationRate.Mul(msrpFactor).Mul(mileageConversion)
}

// MileagePackageCost prices a package: base rate × miles × discount-rate/100
func MileagePackageCost(baseRate, totalMiles, discountRate decimal.Decimal) decimal.Decimal {
	return baseRate.Mul(totalMiles).Mul(discountRate).Div(decimal.NewFromInt(100))
}

// ToMinorUnits converts a dollar amount to integer cents for the gateway,
// rounding half up at the second decimal place.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}
