package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/notexe/reminders/internal/reminder"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"backend":     BackendCSV,
			"csv_path":    "~/.reminders/reminders.csv",
			"sqlite_path": "~/.reminders/reminders.db",
		},
		"display": map[string]interface{}{
			"date_format": reminder.DefaultDateLayout, // 5 Jan 2026
			"time_format": reminder.DefaultTimeLayout, // 6:00 pm; "15:04" for 24-hour
		},
		"ticker": map[string]interface{}{
			"interval_minutes": 5,
		},
		"alerts": map[string]interface{}{
			"lead_minutes": 15,
		},
		"ui": map[string]interface{}{
			"colored_output": true,
		},
		"log": map[string]interface{}{
			"level": "warn",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.reminders/config.yaml"
}
