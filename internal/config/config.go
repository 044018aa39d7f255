// Package config loads platform configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server configuration.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	// Gateway auth: either a plaintext shared token (development) or a bcrypt
	// hash of it (production). When both are set the hash wins.
	AutomationToken     string `env:"AUTOMATION_TOKEN"`
	AutomationTokenHash string `env:"AUTOMATION_TOKEN_HASH"`

	// FXCommissionRate is the fixed commission applied to ZAR cost totals.
	FXCommissionRate string `env:"FX_COMMISSION_RATE" envDefault:"0.014"`

	IdempotencyEnabled bool          `env:"IDEMPOTENCY_ENABLED" envDefault:"true"`
	IdempotencyTTL     time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"10m"`

	WhatsApp WhatsAppConfig
	Telegram TelegramConfig
}

// WhatsAppConfig configures the WhatsApp Cloud API adapter.
type WhatsAppConfig struct {
	APIBaseURL    string `env:"WHATSAPP_API_URL" envDefault:"https://graph.facebook.com/v19.0"`
	PhoneNumberID string `env:"WHATSAPP_PHONE_NUMBER_ID"`
	AccessToken   string `env:"WHATSAPP_ACCESS_TOKEN"`
}

// TelegramConfig configures the Telegram Bot API adapter.
type TelegramConfig struct {
	APIBaseURL string `env:"TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`
	BotToken   string `env:"TELEGRAM_BOT_TOKEN"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.AutomationToken == "" && cfg.AutomationTokenHash == "" {
		return nil, fmt.Errorf("either AUTOMATION_TOKEN or AUTOMATION_TOKEN_HASH must be set")
	}
	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
