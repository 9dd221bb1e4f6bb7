// Package board is a full-screen reminder table that refreshes its countdowns
// on wall-clock boundaries.
package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/notexe/reminders/internal/reminder"
	"github.com/notexe/reminders/internal/scheduler"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // Blue
	actionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))  // Green
	bulletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// tickMsg is delivered at each refresh boundary.
type tickMsg time.Time

type Model struct {
	ctx        context.Context
	collection *reminder.Collection
	format     reminder.DisplayFormat
	interval   time.Duration
	now        func() time.Time

	table  table.Model
	status string
	failed bool
	height int
}

func New(ctx context.Context, collection *reminder.Collection, format reminder.DisplayFormat, interval time.Duration) Model {
	m := Model{
		ctx:        ctx,
		collection: collection,
		format:     format,
		interval:   interval,
		now:        time.Now,
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "!", Width: 1},
			{Title: "Item", Width: 36},
			{Title: "Day", Width: 4},
			{Title: "Date", Width: 12},
			{Title: "Time", Width: 8},
			{Title: "Repeat", Width: 14},
			{Title: "Countdown", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("86"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)

	m.refreshRows()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.scheduleTick()
}

func (m Model) scheduleTick() tea.Cmd {
	now := m.now()
	wait := scheduler.NextBoundary(now, m.interval).Sub(now)
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.collection.RecomputeCountdowns(time.Time(msg).Truncate(time.Second))
		m.refreshRows()
		return m, m.scheduleTick()

	case tea.WindowSizeMsg:
		m.height = msg.Height
		if h := m.height - 6; h >= 5 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "!":
			m.apply("Critical flag toggled", func(i int) error {
				return m.collection.ToggleCritical(m.ctx, i)
			})
		case "a":
			m.apply("Alerts toggled", func(i int) error {
				r, err := m.collection.Get(i)
				if err != nil {
					return err
				}
				return m.collection.SetAlerts(m.ctx, i, !r.AlertsEnabled())
			})
		case "d", "delete":
			m.apply("Deleted", func(i int) error {
				return m.collection.Delete(m.ctx, i)
			})
		case "r":
			m.collection.RecomputeCountdowns(m.now().Truncate(time.Second))
			m.refreshRows()
			m.setStatus("Refreshed", nil)
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// apply runs fn on the selected row and reports the outcome in the status line.
func (m *Model) apply(done string, fn func(i int) error) {
	if m.collection.Len() == 0 {
		return
	}
	err := fn(m.table.Cursor())
	m.refreshRows()
	m.setStatus(done, err)
}

func (m *Model) setStatus(msg string, err error) {
	m.failed = err != nil
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = msg
}

func (m *Model) refreshRows() {
	entries := m.collection.Entries()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		row := m.format.Row(e.Reminder, e.Countdown)
		row.Item = strings.ReplaceAll(row.Item, "\n", " · ")
		rows[i] = table.Row(row.Cells())
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Reminders (%d)", m.collection.Len())))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	if m.status != "" {
		if m.failed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(actionStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	sep := " " + bulletStyle.Render("•") + " "
	b.WriteString(strings.Join([]string{
		keyStyle.Render("!") + ": " + actionStyle.Render("critical"),
		keyStyle.Render("a") + ": " + actionStyle.Render("alerts"),
		keyStyle.Render("d") + ": " + actionStyle.Render("delete"),
		keyStyle.Render("r") + ": " + actionStyle.Render("refresh"),
		keyStyle.Render("q") + ": " + actionStyle.Render("quit"),
	}, sep))

	return b.String()
}
