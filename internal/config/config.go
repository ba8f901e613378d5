package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Stripe     StripeConfig     `yaml:"stripe"`
	Telematics TelematicsConfig `yaml:"telematics"`
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
	JWT        JWTConfig        `yaml:"jwt"`
	Log        LogConfig        `yaml:"log"`
	Billing    BillingConfig    `yaml:"billing"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// StripeConfig contains payment gateway settings
type StripeConfig struct {
	SecretKey       string `yaml:"secret_key"`
	StatementPrefix string `yaml:"statement_prefix"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// TelematicsConfig contains vehicle command provider settings
type TelematicsConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIToken       string `yaml:"api_token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey     string `yaml:"api_key"`
	FromEmail  string `yaml:"from_email"`
	FromName   string `yaml:"from_name"`
	AlertEmail string `yaml:"alert_email"`
}

// JWTConfig contains bearer token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// BillingConfig contains billing constants that operations may tune
type BillingConfig struct {
	DepositDollars       string `yaml:"deposit_dollars"`     // deposit hold and surcharge, e.g. "100.00"
	CaptureWindowDays    int    `yaml:"capture_window_days"` // capture-before horizon for holds
	SnapshotFreshnessMin int    `yaml:"snapshot_freshness_minutes"`
}

// SchedulerConfig contains cron expressions for background jobs
type SchedulerConfig struct {
	VoidExpiredHolds          string `yaml:"void_expired_holds"`
	MarkOverdueAgreements     string `yaml:"mark_overdue_agreements"`
	SendWeeklyRewardSummaries string `yaml:"send_weekly_reward_summaries"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Database.Port = port
		}
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Stripe.SecretKey = val
	}
	if val := os.Getenv("TELEMATICS_API_TOKEN"); val != "" {
		c.Telematics.APIToken = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}
}

func (c *Config) applyDefaults() {
	if c.Billing.DepositDollars == "" {
		c.Billing.DepositDollars = "100.00"
	}
	if c.Billing.CaptureWindowDays == 0 {
		c.Billing.CaptureWindowDays = 7
	}
	if c.Billing.SnapshotFreshnessMin == 0 {
		c.Billing.SnapshotFreshnessMin = 5
	}
	if c.Stripe.TimeoutSeconds == 0 {
		c.Stripe.TimeoutSeconds = 30
	}
	if c.Telematics.TimeoutSeconds == 0 {
		c.Telematics.TimeoutSeconds = 10
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
}

// Validate checks required configuration values
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" || c.Database.Database == "" {
		return fmt.Errorf("database.host and database.database are required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	return nil
}

// GetServerAddress returns the host:port the HTTP server binds to
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString returns the lib/pq connection string
func (c *Config) GetDatabaseConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database, sslMode)
}
