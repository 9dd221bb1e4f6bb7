// Command reminder-board shows the reminder list as a full-screen table whose
// countdowns refresh on the configured interval.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/notexe/reminders/internal/board"
	"github.com/notexe/reminders/internal/config"
	"github.com/notexe/reminders/internal/reminder"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logPath := filepath.Join(filepath.Dir(cfg.StoragePath()), "board.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating data directory: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := cfg.NewLogger(logFile)

	ctx := context.Background()

	store, closeStore, err := cfg.OpenStore(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	collection, _, err := reminder.Open(ctx, store, reminder.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reminders: %v\n", err)
		os.Exit(1)
	}

	m := board.New(ctx, collection, cfg.DisplayFormat(), cfg.TickInterval())
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}
