package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Stripe    StripeConfig    `yaml:"stripe"`
	Email     EmailConfig     `yaml:"email"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Credits   CreditsConfig   `yaml:"credits"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
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

// AuthConfig selects how session tokens are verified. Mode "firebase"
// verifies the provider's session cookie; mode "jwt" verifies locally
// issued HS256 tokens and exists for development.
type AuthConfig struct {
	Mode              string `yaml:"mode"` // "firebase" or "jwt"
	SessionCookieName string `yaml:"session_cookie_name"`
	JWTSecret         string `yaml:"jwt_secret"`
	CredentialsFile   string `yaml:"credentials_file"`
}

// RedisConfig contains rate limiter settings. Leaving Addr empty disables
// rate limiting.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StripeConfig contains payment settings
type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	SuccessURL    string `yaml:"success_url"`
	CancelURL     string `yaml:"cancel_url"`
}

// EmailConfig contains SendGrid settings for purchase receipts
type EmailConfig struct {
	Enabled   bool   `yaml:"enabled"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// VehicleConfig contains the external vehicle lookup collaborator settings
type VehicleConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// CreditsConfig contains credit system toggles
type CreditsConfig struct {
	DemoTopupEnabled bool `yaml:"demo_topup_enabled"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	AuditLedger          string `yaml:"audit_ledger"`
	ExpireStalePurchases string `yaml:"expire_stale_purchases"`
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

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
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
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Auth
	if val := os.Getenv("AUTH_MODE"); val != "" {
		c.Auth.Mode = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Auth.JWTSecret = val
	}
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Auth.CredentialsFile = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Stripe
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Stripe.SecretKey = val
	}
	if val := os.Getenv("STRIPE_WEBHOOK_SECRET"); val != "" {
		c.Stripe.WebhookSecret = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}

	// Vehicle lookup
	if val := os.Getenv("VEHICLE_LOOKUP_BASE_URL"); val != "" {
		c.Vehicle.BaseURL = val
	}
	if val := os.Getenv("VEHICLE_LOOKUP_API_KEY"); val != "" {
		c.Vehicle.APIKey = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Auth validation
	switch c.Auth.Mode {
	case "", "jwt":
		c.Auth.Mode = "jwt"
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("jwt secret is required in jwt auth mode")
		}
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("jwt secret must be at least 32 characters")
		}
	case "firebase":
		if c.Auth.CredentialsFile == "" {
			return fmt.Errorf("firebase credentials file is required in firebase auth mode")
		}
	default:
		return fmt.Errorf("unknown auth mode: %q", c.Auth.Mode)
	}
	if c.Auth.SessionCookieName == "" {
		c.Auth.SessionCookieName = "session"
	}

	// Vehicle lookup defaults
	if c.Vehicle.TimeoutSeconds <= 0 {
		c.Vehicle.TimeoutSeconds = 10
	}

	// Scheduler defaults
	if c.Scheduler.AuditLedger == "" {
		c.Scheduler.AuditLedger = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.ExpireStalePurchases == "" {
		c.Scheduler.ExpireStalePurchases = "0 15 * * * *" // hourly at :15
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
