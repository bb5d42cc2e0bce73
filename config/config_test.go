package config

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"bad start date", func(c *Config) { c.StartDate = "next monday" }},
		{"upload hour too high", func(c *Config) { c.UploadHour = 24 }},
		{"negative upload hour", func(c *Config) { c.UploadHour = -1 }},
		{"negative quota reserve", func(c *Config) { c.YouTube.QuotaReserve = -1 }},
		{"zero rate limit", func(c *Config) { c.YouTube.RateLimitPerMin = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PMPCAL_START_DATE", "2026-10-05")
	t.Setenv("PMPCAL_UPLOAD_HOUR", "9")
	t.Setenv("PMPCAL_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.StartDate != "2026-10-05" {
		t.Errorf("StartDate = %q", cfg.StartDate)
	}
	if cfg.UploadHour != 9 {
		t.Errorf("UploadHour = %d", cfg.UploadHour)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	want := time.Date(2026, time.October, 5, 0, 0, 0, 0, time.UTC)
	if !cfg.StartTime().Equal(want) {
		t.Errorf("StartTime = %v, want %v", cfg.StartTime(), want)
	}
}

func TestEnvRejectsInvalidValues(t *testing.T) {
	t.Setenv("PMPCAL_START_DATE", "not-a-date")
	if _, err := Load(); err == nil {
		t.Fatal("Load should reject invalid start date")
	}
}
