package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/notexe/reminders/internal/reminder"
)

// StoragePath returns the file used by the configured backend.
func (c *Config) StoragePath() string {
	if c.Storage.Backend == BackendSQLite {
		return c.Storage.SQLitePath
	}
	return c.Storage.CSVPath
}

// OpenStore opens the configured backend. The close function is non-nil
// whenever err is nil.
func (c *Config) OpenStore(ctx context.Context, logger *slog.Logger) (reminder.Store, func() error, error) {
	switch c.Storage.Backend {
	case BackendCSV:
		return reminder.NewCSVStore(c.Storage.CSVPath, logger), func() error { return nil }, nil
	case BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(c.Storage.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := reminder.NewSQLiteStore(ctx, c.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}
}

// NewLogger returns a text logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: c.LogLevel(),
	}))
}
