package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	SQLitePath      string `env:"SQLITE_PATH" envDefault:"./data/whatsapp.db"`
	GroupID         string `env:"GROUP_ID"`
	BotPhone        string `env:"BOT_PHONE"`
	ReplyDelayMinMs int    `env:"REPLY_DELAY_MIN_MS" envDefault:"0"` // Minimum delay before reply (milliseconds)
	ReplyDelayMaxMs int    `env:"REPLY_DELAY_MAX_MS" envDefault:"0"` // Maximum delay before reply (milliseconds), 0 = use min as fixed
	ShowTyping      bool   `env:"SHOW_TYPING" envDefault:"false"`    // Show typing indicator during delay
	LogLevel        string `env:"LOG_LEVEL" envDefault:"INFO"`

	Timezone         string        `env:"TIMEZONE" envDefault:"Local"`
	Language         string        `env:"LANGUAGE" envDefault:"en"`
	DefaultDailyGoal int           `env:"DEFAULT_DAILY_GOAL" envDefault:"2000"`
	ClampProgress    bool          `env:"CLAMP_PROGRESS" envDefault:"false"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" envDefault:"1h"`
	// Users are reminded once their last intake is older than this.
	ReminderThreshold time.Duration `env:"REMINDER_THRESHOLD" envDefault:"3h"`
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}
	return FromEnv()
}

// FromEnv parses and validates the process environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)

	if cfg.ReplyDelayMinMs < 0 || cfg.ReplyDelayMaxMs < 0 {
		return Config{}, fmt.Errorf("reply delays must not be negative")
	}
	if cfg.DefaultDailyGoal <= 0 {
		return Config{}, fmt.Errorf("DEFAULT_DAILY_GOAL must be greater than zero, got %d", cfg.DefaultDailyGoal)
	}
	if cfg.ReminderInterval <= 0 || cfg.ReminderThreshold <= 0 {
		return Config{}, fmt.Errorf("reminder interval and threshold must be positive")
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Location is the time zone that decides where a tracking day starts.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
