package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"urbandrive-backend/internal/repository"
	"urbandrive-backend/internal/rewards"
)

type rewardService struct {
	renters    repository.RenterRepository
	apartments repository.ApartmentRepository
	ledger     *rewards.Ledger
}

func NewRewardService(renters repository.RenterRepository, apartments repository.ApartmentRepository, usage rewards.UsageReader) RewardService {
	return &rewardService{
		renters:    renters,
		apartments: apartments,
		ledger:     rewards.NewLedger(usage),
	}
}

// GetBalance reports the renter's free-hour allowance, usage, and remainder
// for the calendar week containing now.
func (s *rewardService) GetBalance(ctx context.Context, renterID int64) (*RewardBalance, error) {
	renter, err := s.renters.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}
	apartment, err := s.apartments.GetByID(ctx, renter.ApartmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	max, err := rewards.MaxAllowedFreeHours(renter, apartment, now)
	if err != nil {
		return nil, err
	}
	used, err := s.ledger.UsedThisWeek(ctx, renterID, now)
	if err != nil {
		return nil, err
	}

	remaining := max.Sub(used)
	if remaining.Sign() < 0 {
		remaining = decimal.Zero
	}

	start, end := rewards.WeekWindow(now)
	return &RewardBalance{
		MaxAllowed: max,
		Used:       used,
		Remaining:  remaining,
		WeekStart:  start,
		WeekEnd:    end,
	}, nil
}
