package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/notexe/reminders/internal/reminder"
)

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// envPrefix marks environment overrides; "__" separates nested keys, so
// REMINDERS_STORAGE__CSV_PATH sets storage.csv_path.
const envPrefix = "REMINDERS_"

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Display DisplayConfig `koanf:"display"`
	Ticker  TickerConfig  `koanf:"ticker"`
	Alerts  AlertsConfig  `koanf:"alerts"`
	UI      UIConfig      `koanf:"ui"`
	Log     LogConfig     `koanf:"log"`
}

type StorageConfig struct {
	Backend    string `koanf:"backend"`     // csv or sqlite
	CSVPath    string `koanf:"csv_path"`    // Reminders file for the csv backend
	SQLitePath string `koanf:"sqlite_path"` // Database file for the sqlite backend
}

// DisplayConfig holds Go time layouts for the date and time columns.
type DisplayConfig struct {
	DateFormat string `koanf:"date_format"`
	TimeFormat string `koanf:"time_format"`
}

type TickerConfig struct {
	IntervalMinutes int `koanf:"interval_minutes"` // Countdown refresh, aligned to the wall clock
}

type AlertsConfig struct {
	LeadMinutes int `koanf:"lead_minutes"` // How far ahead an alert-enabled reminder is announced
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.CSVPath = expandPath(cfg.Storage.CSVPath)
	cfg.Storage.SQLitePath = expandPath(cfg.Storage.SQLitePath)

	return &cfg, nil
}

// envKey maps REMINDERS_STORAGE__CSV_PATH to storage.csv_path.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendCSV:
		if c.Storage.CSVPath == "" {
			return ErrStoragePathMissing
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return ErrStoragePathMissing
		}
	default:
		return fmt.Errorf("%w: %q (supported: %s, %s)",
			ErrUnknownBackend, c.Storage.Backend, BackendCSV, BackendSQLite)
	}

	if c.Display.DateFormat == "" || c.Display.TimeFormat == "" {
		return ErrEmptyDisplayFormat
	}

	if c.Ticker.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, c.Ticker.IntervalMinutes)
	}

	if c.Alerts.LeadMinutes < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLead, c.Alerts.LeadMinutes)
	}

	if _, err := parseLogLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// DisplayFormat returns the layouts the reminder formatter uses.
func (c *Config) DisplayFormat() reminder.DisplayFormat {
	return reminder.DisplayFormat{
		DateLayout: c.Display.DateFormat,
		TimeLayout: c.Display.TimeFormat,
	}
}

// TickInterval returns the countdown refresh interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Ticker.IntervalMinutes) * time.Minute
}

// AlertLead returns how far ahead alerts are announced.
func (c *Config) AlertLead() time.Duration {
	return time.Duration(c.Alerts.LeadMinutes) * time.Minute
}

// LogLevel returns the configured slog level. Call Validate first.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLogLevel(c.Log.Level)
	return level
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
