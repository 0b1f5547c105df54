package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// chargeSettleMargin covers settling or refunding a charge after the model call returns
const chargeSettleMargin = 30 * time.Second

// Config holds application configuration.
// Field tags carry the full variable name: envconfig falls back to the bare
// tag when the prefixed key is unset, so every tag must stay unique.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	LLM       LLMConfig
	Credits   CreditsConfig
	RateLimit RateLimitConfig
	Analyze   AnalyzeConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	BodyLimit       string        `envconfig:"BODY_LIMIT" default:"2M"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_recovery"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration. Redis backs the rate limiter;
// when disabled the limiter falls back to process memory.
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWTConfig configures verification of identity tokens issued by the auth provider
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET"`
	Issuer   string        `envconfig:"JWT_ISSUER"`
	Audience string        `envconfig:"JWT_AUDIENCE"`
	Leeway   time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

// LLMConfig holds the chat-completions provider configuration
type LLMConfig struct {
	APIKey       string        `envconfig:"OPENROUTER_API_KEY"`
	BaseURL      string        `envconfig:"LLM_BASE_URL" default:"https://openrouter.ai/api/v1"`
	Model        string        `envconfig:"LLM_MODEL" default:"deepseek/deepseek-r1-0528"`
	Temperature  float64       `envconfig:"LLM_TEMPERATURE" default:"0.3"`
	MaxTokens    int           `envconfig:"LLM_MAX_TOKENS" default:"4000"`
	Timeout      time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	MaxRetries   int           `envconfig:"LLM_MAX_RETRIES" default:"1"`
	RetryBackoff time.Duration `envconfig:"LLM_RETRY_BACKOFF" default:"750ms"`
	Referer      string        `envconfig:"LLM_REFERER" default:"https://meeting-recovery.app"`
	Title        string        `envconfig:"LLM_TITLE" default:"Meeting Recovery System"`
}

// CreditsConfig holds credit accounting configuration
type CreditsConfig struct {
	Initial        int           `envconfig:"CREDITS_INITIAL" default:"3"`
	LicenseKey     int           `envconfig:"CREDITS_LICENSE_KEY" default:"10"`
	LowThreshold   int           `envconfig:"CREDITS_LOW_THRESHOLD" default:"2"`
	PaymentURL     string        `envconfig:"CREDITS_PAYMENT_URL" default:"https://niddamhub.lemonsqueezy.com/buy/be00a64f-fe92-44a6-a654-d6187a4e864a"`
	StaleChargeAge time.Duration `envconfig:"CREDITS_STALE_CHARGE_AGE" default:"10m"`
}

// RateLimitConfig uses the limiter format ("10-M" = 10 per minute). Empty disables.
type RateLimitConfig struct {
	Analyze string `envconfig:"RATE_LIMIT_ANALYZE" default:"10-M"`
}

// AnalyzeConfig bounds analyze request input
type AnalyzeConfig struct {
	MaxTranscriptChars int `envconfig:"ANALYZE_MAX_TRANSCRIPT_CHARS" default:"200000"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive")
	}
	if c.LLM.MaxRetries < 0 || c.LLM.MaxRetries > 3 {
		return fmt.Errorf("LLM_MAX_RETRIES must be between 0 and 3")
	}
	if c.Credits.Initial < 0 {
		return fmt.Errorf("CREDITS_INITIAL must not be negative")
	}
	if c.Credits.LicenseKey <= 0 {
		return fmt.Errorf("CREDITS_LICENSE_KEY must be positive")
	}
	if c.Credits.PaymentURL == "" {
		return fmt.Errorf("CREDITS_PAYMENT_URL is required")
	}
	if c.Analyze.MaxTranscriptChars <= 0 {
		return fmt.Errorf("ANALYZE_MAX_TRANSCRIPT_CHARS must be positive")
	}
	// Reconciliation must never treat an in-flight charge as abandoned
	if floor := c.AnalysisCallTimeout() + chargeSettleMargin; c.Credits.StaleChargeAge < floor {
		return fmt.Errorf("CREDITS_STALE_CHARGE_AGE must be at least %s (analysis call timeout plus %s)",
			floor, chargeSettleMargin)
	}
	return nil
}

// AnalysisCallTimeout bounds one analysis model call across all of its attempts
func (c *Config) AnalysisCallTimeout() time.Duration {
	return c.LLM.Timeout*time.Duration(c.LLM.MaxRetries+1) + 10*time.Second
}

// IsProduction reports whether the server runs in production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
