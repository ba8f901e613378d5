package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"urbandrive-backend/internal/config"
	"urbandrive-backend/internal/jobs"
	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/payments"
	"urbandrive-backend/internal/repository/postgres"
	"urbandrive-backend/internal/scheduler"
	"urbandrive-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'void-expired-holds', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting UrbanDrive Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Payment Gateway
	gateway := payments.NewStripeGateway(
		cfg.Stripe.SecretKey,
		time.Duration(cfg.Stripe.TimeoutSeconds)*time.Second,
		cfg.Billing.CaptureWindowDays,
	)

	// Initialize Email Service
	emailService := service.NewSendGridEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.SendGrid.AlertEmail,
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, gateway, emailService, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "void-expired-holds":
		jobRunner.VoidExpiredHolds()
	case "mark-overdue-agreements":
		jobRunner.MarkOverdueAgreements()
	case "send-weekly-reward-summaries":
		jobRunner.SendWeeklyRewardSummaries()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	case "all-weekly":
		jobRunner.RunAllWeeklyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - void-expired-holds\n")
		fmt.Printf("  - mark-overdue-agreements\n")
		fmt.Printf("  - send-weekly-reward-summaries\n")
		fmt.Printf("  - all-nightly\n")
		fmt.Printf("  - all-weekly\n")
	}
}
