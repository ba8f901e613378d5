package jobs

import (
	"context"
	"time"

	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/rewards"
)

// VoidExpiredHolds cancels deposit authorizations whose capture-before
// deadline has passed. The gateway would release them on its own eventually;
// voiding proactively frees the renter's credit line sooner.
func (jr *JobRunner) VoidExpiredHolds() {
	jr.runWithRecovery("VoidExpiredHolds", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		holds, err := jr.store.PaymentRepository.ListExpiredHolds(ctx, now)
		if err != nil {
			logger.Error("Failed to list expired holds", "error", err)
			return
		}

		voided := 0
		for _, hold := range holds {
			if err := jr.gateway.Cancel(ctx, hold.ReferenceNumber); err != nil {
				logger.Error("Failed to void expired hold",
					"payment_id", hold.PaymentID,
					"reference", hold.ReferenceNumber,
					"error", err)
				continue
			}
			if err := jr.store.PaymentRepository.MarkCanceled(ctx, hold.PaymentID); err != nil {
				logger.Error("Failed to mark hold canceled",
					"payment_id", hold.PaymentID,
					"error", err)
				continue
			}
			voided++
		}

		logger.Info("Expired holds voided", "found", len(holds), "voided", voided)
	})
}

// MarkOverdueAgreements notifies renters whose active rental is past its
// reserved drop-off time and has not been checked in.
func (jr *JobRunner) MarkOverdueAgreements() {
	jr.runWithRecovery("MarkOverdueAgreements", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		overdue, err := jr.store.AgreementRepository.ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue agreements", "error", err)
			return
		}

		notified := 0
		for _, ag := range overdue {
			logger.Warn("Agreement overdue",
				"agreement_id", ag.ID,
				"confirmation_code", ag.ConfirmationCode,
				"due_back", ag.RsvpDropOffTime)

			renter, err := jr.store.RenterRepository.GetByID(ctx, ag.RenterID)
			if err != nil {
				logger.Error("Failed to load renter for overdue notice",
					"agreement_id", ag.ID,
					"renter_id", ag.RenterID,
					"error", err)
				continue
			}
			if err := jr.email.SendOverdueNotice(ctx, renter.Email, renter.Name, ag.ConfirmationCode, ag.RsvpDropOffTime); err != nil {
				logger.Error("Failed to send overdue notice",
					"agreement_id", ag.ID,
					"error", err)
				continue
			}
			notified++
		}

		logger.Info("Overdue agreements processed", "found", len(overdue), "notified", notified)
	})
}

// SendWeeklyRewardSummaries emails each renter who redeemed free hours last
// week a usage recap. Runs after the Monday 00:00 UTC rollover so the window
// it reports on is closed.
func (jr *JobRunner) SendWeeklyRewardSummaries() {
	jr.runWithRecovery("SendWeeklyRewardSummaries", func() {
		ctx := context.Background()

		// Last week's window: the current one shifted back seven days.
		from, to := rewards.WeekWindow(time.Now().UTC())
		from = from.AddDate(0, 0, -7)
		to = to.AddDate(0, 0, -7)

		usage, err := jr.store.RewardRepository.ListUsageByRenter(ctx, from, to)
		if err != nil {
			logger.Error("Failed to load weekly reward usage", "error", err)
			return
		}

		sent := 0
		for renterID, hours := range usage {
			if hours.Sign() <= 0 {
				continue
			}
			renter, err := jr.store.RenterRepository.GetByID(ctx, renterID)
			if err != nil {
				logger.Error("Failed to load renter for reward summary",
					"renter_id", renterID,
					"error", err)
				continue
			}
			if err := jr.email.SendRewardSummary(ctx, renter.Email, renter.Name, hours); err != nil {
				logger.Error("Failed to send reward summary",
					"renter_id", renterID,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Weekly reward summaries sent",
			"week_start", from, "renters", len(usage), "sent", sent)
	})
}
