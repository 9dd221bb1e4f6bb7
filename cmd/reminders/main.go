package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/notexe/reminders/internal/config"
	"github.com/notexe/reminders/internal/reminder"
	"github.com/notexe/reminders/internal/repl"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	backend := flag.String("backend", "", "Storage backend (csv, sqlite); overrides config")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Apply CLI flag overrides
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := cfg.OpenStore(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	collection, result, err := reminder.Open(ctx, store, reminder.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reminders: %v\n", err)
		os.Exit(1)
	}
	if n := len(result.Skipped); n > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d unreadable row(s) in %s\n", n, cfg.StoragePath())
	}

	replInstance, err := repl.NewREPL(collection, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		replInstance.Stop()
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
