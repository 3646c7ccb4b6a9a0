package config_test

import (
	"testing"
	"time"

	"github.com/vega9999/HydroHero/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.SQLitePath != "./data/whatsapp.db" {
		t.Errorf("Unexpected SQLitePath %q", cfg.SQLitePath)
	}
	if cfg.DefaultDailyGoal != 2000 {
		t.Errorf("Expected default goal 2000, got %d", cfg.DefaultDailyGoal)
	}
	if cfg.ReminderInterval != time.Hour || cfg.ReminderThreshold != 3*time.Hour {
		t.Errorf("Unexpected reminder timing %s / %s", cfg.ReminderInterval, cfg.ReminderThreshold)
	}
	if cfg.ClampProgress {
		t.Error("Progress should not be clamped by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GROUP_ID", "12345@g.us")
	t.Setenv("REPLY_DELAY_MIN_MS", "500")
	t.Setenv("SHOW_TYPING", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TIMEZONE", "Asia/Jakarta")
	t.Setenv("REMINDER_INTERVAL", "2h")
	t.Setenv("CLAMP_PROGRESS", "true")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.GroupID != "12345@g.us" || cfg.ReplyDelayMinMs != 500 || !cfg.ShowTyping {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("Expected upper-cased log level, got %q", cfg.LogLevel)
	}
	if cfg.ReminderInterval != 2*time.Hour || !cfg.ClampProgress {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Asia/Jakarta" {
		t.Errorf("Expected Asia/Jakarta, got %v (%v)", loc, err)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"DEFAULT_DAILY_GOAL": "0",
		"REMINDER_INTERVAL":  "soon",
		"REPLY_DELAY_MIN_MS": "-1",
		"TIMEZONE":           "Mars/Olympus",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := config.FromEnv(); err == nil {
				t.Errorf("%s=%s: expected error", key, value)
			}
		})
	}
}
