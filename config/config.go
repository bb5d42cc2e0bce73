// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	env "github.com/Netflix/go-env"
)

// YouTubeConfig holds credentials and pacing for the upload scheduler.
type YouTubeConfig struct {
	// CredentialsFile is the OAuth2 client credentials JSON path.
	CredentialsFile string `json:"credentials_file" env:"PMPCAL_YT_CREDENTIALS"`
	// TokenFile is the cached OAuth2 token path.
	TokenFile string `json:"token_file" env:"PMPCAL_YT_TOKEN"`
	// QuotaReserve is the minimum daily quota units to keep in reserve.
	QuotaReserve int `json:"quota_reserve" env:"PMPCAL_YT_QUOTA_RESERVE"`
	// RateLimitPerMin caps upload submissions per minute.
	RateLimitPerMin int `json:"rate_limit_per_min" env:"PMPCAL_YT_RATE_LIMIT"`
}

// Config holds all application configuration for the content pipeline.
type Config struct {
	// CalendarPath is the content-calendar override JSON (optional).
	CalendarPath string `json:"calendar_path" env:"PMPCAL_CALENDAR"`
	// KeywordsPath is the keyword database JSON (optional).
	KeywordsPath string `json:"keywords_path" env:"PMPCAL_KEYWORDS"`
	// ChannelPath is the channel branding YAML (optional).
	ChannelPath string `json:"channel_path" env:"PMPCAL_CHANNEL"`
	// OutputDir is the root of the generated output tree.
	OutputDir string `json:"output_dir" env:"PMPCAL_OUTPUT_DIR"`

	// StartDate is the publish date of week 1 day 1 (YYYY-MM-DD).
	StartDate string `json:"start_date" env:"PMPCAL_START_DATE"`
	// UploadHour is the UTC hour of day videos go live (0-23).
	UploadHour int `json:"upload_hour" env:"PMPCAL_UPLOAD_HOUR"`
	// PrimaryKeyword overrides the keyword database's primary keyword.
	PrimaryKeyword string `json:"primary_keyword" env:"PMPCAL_PRIMARY_KEYWORD"`

	// LogLevel is the zap log level (debug, info, warn, error).
	LogLevel string `json:"log_level" env:"PMPCAL_LOG_LEVEL"`

	YouTube YouTubeConfig `json:"youtube"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:  filepath.Join("generated", "metadata"),
		StartDate:  "2026-09-07",
		UploadHour: 15,
		LogLevel:   "info",
		YouTube: YouTubeConfig{
			CredentialsFile: "client_secret.json",
			TokenFile:       "token.json",
			QuotaReserve:    0,
			RateLimitPerMin: 6,
		},
	}
}

// Load loads configuration from environment variables, config file, and
// applies defaults. Priority: env vars > config file > defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from pmpcal.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"pmpcal.json",
		filepath.Join(os.Getenv("HOME"), ".config", "pmpcal", "pmpcal.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if _, err := time.Parse("2006-01-02", c.StartDate); err != nil {
		return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
	}
	if c.UploadHour < 0 || c.UploadHour > 23 {
		return fmt.Errorf("upload_hour must be in 0..23")
	}
	if c.YouTube.QuotaReserve < 0 {
		return fmt.Errorf("quota_reserve must be non-negative")
	}
	if c.YouTube.RateLimitPerMin <= 0 {
		return fmt.Errorf("rate_limit_per_min must be positive")
	}
	return nil
}

// StartTime returns the parsed start date at midnight UTC. Validate must
// have accepted the config first.
func (c *Config) StartTime() time.Time {
	t, _ := time.Parse("2006-01-02", c.StartDate)
	return t.UTC()
}
