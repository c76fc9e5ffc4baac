// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"COMPANION_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"COMPANION_SERVER_PORT" envDefault:"3000"`
	Env        string `env:"COMPANION_ENV" envDefault:"development"`
	LogLevel   string `env:"COMPANION_LOG_LEVEL" envDefault:"info"`

	// Device allow-list. Empty means any device id is accepted, but the
	// scheduler then pings only the fallback device.
	AllowedDeviceIDs []string `env:"COMPANION_ALLOWED_DEVICE_IDS" envSeparator:","`

	// Scheduler timezone for the cron expressions.
	Timezone string `env:"COMPANION_TZ" envDefault:"America/Los_Angeles"`

	// Upload and push limits
	MaxUploadBytes int64         `env:"COMPANION_MAX_UPLOAD_BYTES" envDefault:"4194304"` // 4 MiB
	WSWriteTimeout time.Duration `env:"COMPANION_WS_WRITE_TIMEOUT" envDefault:"10s"`

	// Per-client request rate limiting
	RateLimitRPS   float64 `env:"COMPANION_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"COMPANION_RATE_LIMIT_BURST" envDefault:"20"`

	// OpenAI responder configuration. Empty key selects the rule-based
	// stub responder.
	OpenAIAPIKey string `env:"COMPANION_OPENAI_API_KEY"`
	OpenAIModel  string `env:"COMPANION_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseOpenAI returns true if the OpenAI responder is configured.
func (c Config) UseOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// DeviceAllowed reports whether a device id passes the allow-list. An
// empty allow-list accepts every id.
func (c Config) DeviceAllowed(deviceID string) bool {
	if len(c.AllowedDeviceIDs) == 0 {
		return true
	}
	for _, id := range c.AllowedDeviceIDs {
		if id == deviceID {
			return true
		}
	}
	return false
}

// ScheduleDeviceIDs returns the fixed device set the scheduler notifies:
// the allow-list when configured, otherwise the single default device.
func (c Config) ScheduleDeviceIDs() []string {
	if len(c.AllowedDeviceIDs) > 0 {
		return c.AllowedDeviceIDs
	}
	return []string{"dev-001"}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("COMPANION_SERVER_PORT must be in 1..65535, got %d", cfg.ServerPort)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("COMPANION_TZ %q is not a valid IANA timezone: %w", cfg.Timezone, err)
	}

	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("COMPANION_MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}

	// Drop whitespace and empty entries from the allow-list so
	// "dev-001, dev-002," parses the way operators expect.
	cleaned := cfg.AllowedDeviceIDs[:0]
	for _, id := range cfg.AllowedDeviceIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			cleaned = append(cleaned, id)
		}
	}
	cfg.AllowedDeviceIDs = cleaned

	return cfg, nil
}
