// Package rewards computes a renter's weekly free-hour allowance and
// validates redemption requests against it.
package rewards

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/domain"
)

// Reward-limit rejections share a stable title so clients can key off it.
const (
	TitleExceedsRentalPeriod = "Reward Hours Exceed Rental Period"
	TitleFreeHoursLimit      = "Free Hours Limit Exceeded"
)

// UsageReader reads redeemed reward hours for a renter over a time range.
// Satisfied by repository.RewardRepository.
type UsageReader interface {
	SumHours(ctx context.Context, renterID int64, from, to time.Time) (decimal.Decimal, error)
}

// Ledger answers how many free hours a renter may still redeem this week
type Ledger struct {
	usage UsageReader
}

func NewLedger(usage UsageReader) *Ledger {
	return &Ledger{usage: usage}
}

// WeekWindow returns the calendar week containing now: Monday 00:00 UTC
// inclusive through the following Monday 00:00 UTC exclusive.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysSinceMonday)
	return start, start.AddDate(0, 0, 7)
}

// MaxAllowedFreeHours resolves the renter's weekly allotment from the
// apartment configuration. Resolution falls back downward through
// Platinum → Gold → Silver → Free when a higher tier's allotment is unset,
// and collapses entirely to the Free allotment when the plan is inactive.
func MaxAllowedFreeHours(renter *domain.Renter, apartment *domain.Apartment, now time.Time) (decimal.Decimal, error) {
	active, err := renter.PlanActive(now)
	if err != nil {
		return decimal.Zero, err
	}

	tier := renter.PlanTier
	if !active {
		tier = domain.PlanTierFree
	}

	switch tier {
	case domain.PlanTierPlatinum:
		if apartment.PlatinumHours != nil {
			return *apartment.PlatinumHours, nil
		}
		fallthrough
	case domain.PlanTierGold:
		if apartment.GoldHours != nil {
			return *apartment.GoldHours, nil
		}
		fallthrough
	case domain.PlanTierSilver:
		if apartment.SilverHours != nil {
			return *apartment.SilverHours, nil
		}
		fallthrough
	default:
		if apartment.FreeHours != nil {
			return *apartment.FreeHours, nil
		}
		return decimal.Zero, nil
	}
}

// UsedThisWeek sums the renter's redeemed hours in the current week window
func (l *Ledger) UsedThisWeek(ctx context.Context, renterID int64, now time.Time) (decimal.Decimal, error) {
	from, to := WeekWindow(now)
	return l.usage.SumHours(ctx, renterID, from, to)
}

// Validate runs the ordered redemption checks. The first failing check wins
// and each failure is a distinct NotAllowedError.
func (l *Ledger) Validate(ctx context.Context, renter *domain.Renter, apartment *domain.Apartment, reservationHours, requested decimal.Decimal, now time.Time) error {
	if requested.Sign() <= 0 {
		return nil
	}

	if requested.GreaterThan(reservationHours) {
		return &domain.NotAllowedError{
			Title:   TitleExceedsRentalPeriod,
			Message: "you cannot redeem more reward hours than the rental period",
		}
	}

	max, err := MaxAllowedFreeHours(renter, apartment, now)
	if err != nil {
		return err
	}
	if requested.GreaterThan(max) {
		return &domain.NotAllowedError{
			Title:   TitleFreeHoursLimit,
			Message: "you have exceeded your free hours limit for this week",
		}
	}

	used, err := l.UsedThisWeek(ctx, renter.ID, now)
	if err != nil {
		return err
	}
	if max.Sub(used).LessThan(requested) {
		return &domain.NotAllowedError{
			Title:   TitleFreeHoursLimit,
			Message: "you have exceeded your free hours limit for this week",
		}
	}

	return nil
}
