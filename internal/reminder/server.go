package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminders"
	serverVersion = "1.0.0"
)

// Server is the MCP server for reminder management. Indexes in tool
// arguments are 1-based, as returned by list_reminders.
type Server struct {
	mcpServer  *server.MCPServer
	collection *Collection
	format     DisplayFormat
	now        func() time.Time
}

// NewServer creates a new Reminder MCP server backed by the given collection.
func NewServer(collection *Collection, format DisplayFormat) *Server {
	s := &Server{
		collection: collection,
		format:     format,
		now:        time.Now,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// listedReminder is one entry of the list_reminders output.
type listedReminder struct {
	Index int `json:"index"`
	DisplayRow
	Alerts bool `json:"alerts"`
}

func (s *Server) registerTools() {
	// list_reminders
	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List all reminders in display order with their countdown"),
		),
		s.handleListReminders,
	)

	// add_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a reminder. Leave date and time empty for an unscheduled item"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Reminder text (single line)")),
			mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD")),
			mcp.WithString("time", mcp.Description("Time as HH:MM (24-hour); without a date it means today")),
			mcp.WithString("notes", mcp.Description("Optional notes, may span lines")),
			mcp.WithString("repeat", mcp.Description("Optional repeat text, stored as given")),
			mcp.WithBoolean("critical", mcp.Description("Mark as critical")),
			mcp.WithBoolean("alerts", mcp.Description("Enable alerts")),
		),
		s.handleAddReminder,
	)

	// update_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("update_reminder",
			mcp.WithDescription("Update a reminder's text, schedule, notes or repeat"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("Reminder index from list_reminders")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("date", mcp.Description("New date as YYYY-MM-DD")),
			mcp.WithString("time", mcp.Description("New time as HH:MM")),
			mcp.WithString("notes", mcp.Description("New notes")),
			mcp.WithString("repeat", mcp.Description("New repeat text")),
			mcp.WithBoolean("clear_schedule", mcp.Description("Remove the date and time")),
		),
		s.handleUpdateReminder,
	)

	// delete_reminder
	s.mcpServer.AddTool(
		mcp.NewTool("delete_reminder",
			mcp.WithDescription("Delete a reminder permanently"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("Reminder index from list_reminders")),
		),
		s.handleDeleteReminder,
	)

	// toggle_critical
	s.mcpServer.AddTool(
		mcp.NewTool("toggle_critical",
			mcp.WithDescription("Flip the critical flag of a reminder"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("Reminder index from list_reminders")),
		),
		s.handleToggleCritical,
	)

	// set_alerts
	s.mcpServer.AddTool(
		mcp.NewTool("set_alerts",
			mcp.WithDescription("Enable or disable alerts for a reminder"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("Reminder index from list_reminders")),
			mcp.WithBoolean("enabled", mcp.Required(), mcp.Description("Whether alerts are enabled")),
		),
		s.handleSetAlerts,
	)
}

func (s *Server) handleListReminders(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := s.now()
	s.collection.RecomputeCountdowns(now)
	entries := s.collection.Entries()

	if len(entries) == 0 {
		return mcp.NewToolResultText("No reminders found."), nil
	}

	listed := make([]listedReminder, len(entries))
	for i, e := range entries {
		listed[i] = listedReminder{
			Index:      i + 1,
			DisplayRow: s.format.Row(e.Reminder, e.Countdown),
			Alerts:     e.Reminder.AlertsEnabled(),
		}
	}

	output, _ := json.MarshalIndent(listed, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("title is required"), nil
	}

	when, err := ParseWhen(req.GetString("date", ""), req.GetString("time", ""), s.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := New(when, title)
	r.Notes = req.GetString("notes", "")
	r.Repeat = req.GetString("repeat", "")
	r.SetCritical(req.GetBool("critical", false))
	r.SetAlerts(req.GetBool("alerts", false))

	idx, err := s.collection.Add(ctx, r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder added at index %d.", idx+1)), nil
}

func (s *Server) handleUpdateReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, errResult := indexArg(req)
	if errResult != nil {
		return errResult, nil
	}

	r, err := s.collection.Get(idx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if v := req.GetString("title", ""); v != "" {
		r.Description = v
	}
	// notes and repeat may be sent empty to clear them.
	args := req.GetArguments()
	if _, ok := args["notes"]; ok {
		r.Notes = req.GetString("notes", "")
	}
	if _, ok := args["repeat"]; ok {
		r.Repeat = req.GetString("repeat", "")
	}

	dateStr, timeStr := req.GetString("date", ""), req.GetString("time", "")
	switch {
	case req.GetBool("clear_schedule", false):
		r.When = time.Time{}
	case dateStr != "" || timeStr != "":
		if dateStr == "" && r.Scheduled() {
			dateStr = r.When.Format(dateLayout)
		}
		when, err := ParseWhen(dateStr, timeStr, s.now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if timeStr == "" && r.HasTime() {
			when = time.Date(when.Year(), when.Month(), when.Day(),
				r.When.Hour(), r.When.Minute(), 0, 0, when.Location())
		}
		r.When = when
	}

	newIdx, err := s.collection.Update(ctx, idx, r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder updated, now at index %d.", newIdx+1)), nil
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, errResult := indexArg(req)
	if errResult != nil {
		return errResult, nil
	}

	if err := s.collection.Delete(ctx, idx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d deleted.", idx+1)), nil
}

func (s *Server) handleToggleCritical(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, errResult := indexArg(req)
	if errResult != nil {
		return errResult, nil
	}

	if err := s.collection.ToggleCritical(ctx, idx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle critical flag: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d critical flag toggled.", idx+1)), nil
}

func (s *Server) handleSetAlerts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, errResult := indexArg(req)
	if errResult != nil {
		return errResult, nil
	}
	enabled := req.GetBool("enabled", false)

	if err := s.collection.SetAlerts(ctx, idx, enabled); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set alerts: %v", err)), nil
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d alerts %s.", idx+1, state)), nil
}

// indexArg converts the 1-based index argument to a 0-based index.
func indexArg(req mcp.CallToolRequest) (int, *mcp.CallToolResult) {
	idxFloat := req.GetFloat("index", -1)
	if idxFloat < 1 {
		return -1, mcp.NewToolResultError("index is required and must be 1 or greater")
	}
	return int(idxFloat) - 1, nil
}
