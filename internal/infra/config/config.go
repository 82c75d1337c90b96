package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string        `envconfig:"PRACTICUM_TOKEN"`
	TelegramToken     string        `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatIDRaw string        `envconfig:"TELEGRAM_CHAT_ID"`
	TelegramChatID    int64         `ignored:"true"`
	PracticumEndpoint string        `envconfig:"PRACTICUM_ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
	RetryPeriod       time.Duration `envconfig:"RETRY_PERIOD" default:"10m"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	TelegramTimeout   time.Duration `envconfig:"TELEGRAM_TIMEOUT" default:"10s"`
	NotifyRate        float64       `envconfig:"NOTIFY_RATE" default:"1"`
	FromDate          *int64        `envconfig:"FROM_DATE"` // initial poll cursor, defaults to startup time
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile           string        `envconfig:"LOG_FILE"`
	Environment       string        `envconfig:"ENVIRONMENT" default:"development"`
	DatabaseURL       string        `envconfig:"DATABASE_URL"`
	MetricsAddr       string        `envconfig:"METRICS_ADDR"`
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load does not override existing env variables; a missing file is fine.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.PracticumToken) == "" {
		return fmt.Errorf("PRACTICUM_TOKEN is not set")
	}
	if strings.TrimSpace(c.TelegramToken) == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	if strings.TrimSpace(c.TelegramChatIDRaw) == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	chatID, err := strconv.ParseInt(strings.TrimSpace(c.TelegramChatIDRaw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}
	c.TelegramChatID = chatID
	if c.RetryPeriod < time.Second {
		return fmt.Errorf("RETRY_PERIOD must be at least 1s, got %s", c.RetryPeriod)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if c.TelegramTimeout <= 0 {
		return fmt.Errorf("TELEGRAM_TIMEOUT must be positive, got %s", c.TelegramTimeout)
	}
	if c.NotifyRate <= 0 {
		return fmt.Errorf("NOTIFY_RATE must be positive, got %v", c.NotifyRate)
	}
	return nil
}

// InitialCursor returns the first from_date to query with.
func (c *AppConfig) InitialCursor(now time.Time) int64 {
	if c.FromDate != nil {
		return *c.FromDate
	}
	return now.Unix()
}
