package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the outreach service
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Email    EmailConfig    `yaml:"email"`
	Quota    QuotaConfig    `yaml:"quota"`
	Import   ImportConfig   `yaml:"import"`
	App      AppConfig      `yaml:"app"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with ECS detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.GetHost(), c.Port)
}

// DatabaseConfig holds the Postgres connection settings
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// RedisConfig holds the optional Redis connection. An empty URL disables
// Redis; locks then fall back to Postgres advisory locks.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// EmailConfig holds transactional email provider settings
type EmailConfig struct {
	Provider       string         `yaml:"provider"` // brevo, ses, sendgrid
	FromEmail      string         `yaml:"from_email"`
	FromName       string         `yaml:"from_name"`
	SenderName     string         `yaml:"sender_name"`
	SendIntervalMS int            `yaml:"send_interval_ms"`
	TimeoutSeconds int            `yaml:"timeout_seconds"`
	Brevo          BrevoConfig    `yaml:"brevo"`
	SES            SESConfig      `yaml:"ses"`
	SendGrid       SendGridConfig `yaml:"sendgrid"`
}

// SendInterval is the pause between consecutive sends of one batch.
func (c EmailConfig) SendInterval() time.Duration {
	return time.Duration(c.SendIntervalMS) * time.Millisecond
}

// Timeout returns the provider HTTP timeout as a duration
func (c EmailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BrevoConfig holds Brevo (ex-Sendinblue) API configuration
type BrevoConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SESConfig holds AWS SES configuration
type SESConfig struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
}

// SendGridConfig holds SendGrid API configuration
type SendGridConfig struct {
	APIKey string `yaml:"api_key"`
}

// QuotaConfig holds the daily send quota settings
type QuotaConfig struct {
	Backend           string `yaml:"backend"` // postgres or redis
	DefaultDailyLimit int    `yaml:"default_daily_limit"`
}

// ImportConfig holds contact import settings
type ImportConfig struct {
	BatchSize      int    `yaml:"batch_size"`
	LockTTLSeconds int    `yaml:"lock_ttl_seconds"`
	S3Region       string `yaml:"s3_region"`
}

// LockTTL returns how long an import may hold its source lock
func (c ImportConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// AppConfig holds public URLs used in generated emails
type AppConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// ShouldRedact reports whether PII redaction is on (default true).
func (c LogConfig) ShouldRedact() bool {
	return c.RedactPII == nil || *c.RedactPII
}

// Load reads configuration from a YAML file and applies defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 3
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "brevo"
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = "info@boostifymusic.com"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Boostify Music"
	}
	if cfg.Email.SenderName == "" {
		cfg.Email.SenderName = "Boostify Music Team"
	}
	if cfg.Email.SendIntervalMS == 0 {
		cfg.Email.SendIntervalMS = 500
	}
	if cfg.Email.TimeoutSeconds == 0 {
		cfg.Email.TimeoutSeconds = 30
	}
	if cfg.Email.Brevo.BaseURL == "" {
		cfg.Email.Brevo.BaseURL = "https://api.brevo.com"
	}
	if cfg.Email.SES.Region == "" {
		cfg.Email.SES.Region = "us-east-1"
	}
	if cfg.Quota.Backend == "" {
		cfg.Quota.Backend = "postgres"
	}
	if cfg.Quota.DefaultDailyLimit == 0 {
		cfg.Quota.DefaultDailyLimit = 20
	}
	if cfg.Import.BatchSize == 0 {
		cfg.Import.BatchSize = 50
	}
	if cfg.Import.LockTTLSeconds == 0 {
		cfg.Import.LockTTLSeconds = 600
	}
	if cfg.Import.S3Region == "" {
		cfg.Import.S3Region = "us-east-1"
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "https://boostifymusic.com"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return &cfg, nil
}

// LoadFromEnv loads the YAML file and then applies environment overrides,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("EMAIL_PROVIDER"); v != "" {
		cfg.Email.Provider = v
	}
	if v := os.Getenv("BREVO_API_KEY"); v != "" {
		cfg.Email.Brevo.APIKey = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		cfg.Email.SendGrid.APIKey = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.Email.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.Email.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.Email.SES.Region = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.App.BaseURL = v
	}
	if v := os.Getenv("QUOTA_BACKEND"); v != "" {
		cfg.Quota.Backend = v
	}
	if v := os.Getenv("OUTREACH_DAILY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("OUTREACH_DAILY_LIMIT must be a positive integer, got %q", v)
		}
		cfg.Quota.DefaultDailyLimit = n
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		cfg.Import.S3Region = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}
