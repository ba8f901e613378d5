package jobs

import (
	"database/sql"

	"urbandrive-backend/internal/config"
	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/repository/postgres"
	"urbandrive-backend/internal/service"
)

// JobRunner coordinates all scheduled billing jobs
type JobRunner struct {
	db      *sql.DB
	store   *postgres.Store
	gateway service.PaymentGateway
	email   service.EmailService
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, gateway service.PaymentGateway, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:      db,
		store:   store,
		gateway: gateway,
		email:   email,
		config:  cfg,
	}
}

// Config exposes the runner's configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.VoidExpiredHolds()
	jr.MarkOverdueAgreements()
}

// RunAllWeeklyJobs runs all weekly jobs (for manual execution)
func (jr *JobRunner) RunAllWeeklyJobs() {
	jr.SendWeeklyRewardSummaries()
}
