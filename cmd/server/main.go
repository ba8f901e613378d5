package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	httpapi "urbandrive-backend/internal/api/http"
	"urbandrive-backend/internal/config"
	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/payments"
	"urbandrive-backend/internal/repository/postgres"
	"urbandrive-backend/internal/security"
	"urbandrive-backend/internal/service"
	"urbandrive-backend/internal/telematics"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting UrbanDrive Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Payment Gateway
	gateway := payments.NewStripeGateway(
		cfg.Stripe.SecretKey,
		time.Duration(cfg.Stripe.TimeoutSeconds)*time.Second,
		cfg.Billing.CaptureWindowDays,
	)

	// Initialize Telematics
	commander := telematics.NewClient(
		cfg.Telematics.BaseURL,
		cfg.Telematics.APIToken,
		time.Duration(cfg.Telematics.TimeoutSeconds)*time.Second,
	)
	dispatcher := telematics.NewDispatcher(commander, 30*time.Second)

	// Initialize Email Service
	emailSvc := service.NewSendGridEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.SendGrid.AlertEmail,
	)

	deposit, err := decimal.NewFromString(cfg.Billing.DepositDollars)
	if err != nil {
		logger.Error("Invalid deposit amount in configuration", "value", cfg.Billing.DepositDollars, "error", err)
		log.Fatalf("Invalid billing.deposit_dollars: %v", err)
	}

	// Initialize Services
	agreementSvc := service.NewAgreementService(service.AgreementServiceDeps{
		Agreements: store.AgreementRepository,
		Payments:   store.PaymentRepository,
		Vehicles:   store.VehicleRepository,
		Apartments: store.ApartmentRepository,
		Renters:    store.RenterRepository,
		Mileage:    store.MileagePackageRepository,
		Tx:         store,
		Gateway:    gateway,
		Dispatcher: dispatcher,
		Email:      emailSvc,
		Billing: service.BillingPolicy{
			Deposit:           deposit,
			SnapshotFreshness: time.Duration(cfg.Billing.SnapshotFreshnessMin) * time.Minute,
			StatementSuffix:   cfg.Stripe.StatementPrefix,
		},
	})
	rewardSvc := service.NewRewardService(store.RenterRepository, store.ApartmentRepository, store.RewardRepository)

	// Set up HTTP server
	router := httpapi.NewRouter(agreementSvc, rewardSvc, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
