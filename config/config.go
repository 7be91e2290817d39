package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	// Server Configuration
	Server ServerConfig
	Logger LoggerConfig

	// Environment Configuration
	Environment EnvironmentConfig

	// Data store Configuration
	Postgres PostgresConfig

	// Delivery gateway Configuration
	FCM  FCMConfig
	SMTP SMTPConfig

	// Report archive Configuration
	Minio MinioConfig

	// Monitoring & internal API Configuration
	Discord DiscordConfig
	JWT     JWTConfig

	// Protected-field encryption Configuration
	Encrypter EncrypterConfig
}

// ServerConfig is the configuration for the HTTP server
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"8080"`
	Mode string `env:"SERVER_MODE" envDefault:"release"`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"false"`
}

// EnvironmentConfig is the configuration for environment-aware features
type EnvironmentConfig struct {
	Name string `env:"ENV" envDefault:"production"`
	// Timezone is the civil time zone used for dose schedules and
	// calendar-day alert buckets.
	Timezone string `env:"APP_TIMEZONE" envDefault:"Local"`
}

// PostgresConfig is the configuration for PostgreSQL
type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	DBName   string `env:"POSTGRES_DB" envDefault:"adherence"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

// FCMConfig is the configuration for the Firebase Cloud Messaging gateway
type FCMConfig struct {
	CredentialsFile string `env:"FCM_CREDENTIALS_FILE"`
}

// SMTPConfig is the configuration for the transactional email gateway
type SMTPConfig struct {
	Host          string        `env:"SMTP_HOST"`
	Port          int           `env:"SMTP_PORT" envDefault:"587"`
	Username      string        `env:"SMTP_USERNAME"`
	Password      string        `env:"SMTP_PASSWORD"`
	From          string        `env:"SMTP_FROM"`
	Security      string        `env:"SMTP_SECURITY" envDefault:"starttls"`
	Timeout       time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	RatePerSecond float64       `env:"SMTP_RATE_PER_SECOND" envDefault:"14"`
}

// MinioConfig is the configuration for the digest report archive
type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"digest-reports"`
}

// DiscordConfig is the configuration for Discord webhook error reporting
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// JWTConfig is the configuration for the internal API service token
type JWTConfig struct {
	SecretKey string `env:"JWT_SECRET_KEY"`
}

// EncrypterConfig is the configuration for decrypting protected health
// fields at rest (emergency-contact phone numbers)
type EncrypterConfig struct {
	Key string `env:"ENCRYPTER_KEY"`
}

// Load loads the static configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if cfg.JWT.SecretKey != "" && len(cfg.JWT.SecretKey) < 32 {
		return fmt.Errorf("jwt secret key must be at least 32 characters")
	}
	if k := len(cfg.Encrypter.Key); k != 0 && k != 16 && k != 24 && k != 32 {
		return fmt.Errorf("encrypter key must be 16, 24, or 32 bytes")
	}
	return nil
}
