// Command mcp-reminder exposes the reminder list over MCP.
//
// It reads the same configuration as the reminders command, so both work on
// the same file or database.
//
// Usage:
//
//	./mcp-reminder                    # Start MCP server (stdio)
//	./mcp-reminder --config path.yaml # Use another config file
//	./mcp-reminder --help             # Show help
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/notexe/reminders/internal/config"
	"github.com/notexe/reminders/internal/reminder"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	flag.Usage = printHelp
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol.
	logger := cfg.NewLogger(os.Stderr)
	ctx := context.Background()

	store, closeStore, err := cfg.OpenStore(ctx, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	collection, _, err := reminder.Open(ctx, store, reminder.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load reminders: %v\n", err)
		os.Exit(1)
	}

	s := reminder.NewServer(collection, cfg.DisplayFormat())

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Fprintln(os.Stderr, `MCP Reminder Server - Reminder management via MCP protocol

USAGE:
    mcp-reminder                 Start MCP server (communicates via stdio)
    mcp-reminder --config FILE   Use FILE instead of ~/.reminders/config.yaml
    mcp-reminder --help          Show this help

ENVIRONMENT:
    REMINDERS_STORAGE__BACKEND      csv or sqlite
    REMINDERS_STORAGE__CSV_PATH     Reminders file (default ~/.reminders/reminders.csv)
    REMINDERS_STORAGE__SQLITE_PATH  Database file (default ~/.reminders/reminders.db)

TOOLS:
    list_reminders   List reminders in display order with countdowns
    add_reminder     Add a reminder (title, date, time, notes, repeat, critical, alerts)
    update_reminder  Update fields of a reminder by its 1-based index
    delete_reminder  Delete a reminder by index
    toggle_critical  Flip the critical marker
    set_alerts       Turn alerts on or off

CONFIGURATION:
    Add to your MCP client config:
    {
      "mcpServers": {
        "reminders": {
          "command": "/path/to/mcp-reminder",
          "args": []
        }
      }
    }`)
}
