package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/notexe/reminders/internal/reminder"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")). // Yellow
			Bold(true)

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple

	BorderColor = lipgloss.Color("62") // Soft blue

	CellStyle = lipgloss.NewStyle().Padding(0, 1)
)

type Formatter struct {
	colored bool
	format  reminder.DisplayFormat
}

func NewFormatter(colored bool, format reminder.DisplayFormat) *Formatter {
	return &Formatter{
		colored: colored,
		format:  format,
	}
}

// DisplayFormat returns the layouts used for rows.
func (f *Formatter) DisplayFormat() reminder.DisplayFormat {
	return f.format
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

// FormatAlert renders the line printed when an alert-enabled reminder comes due.
func (f *Formatter) FormatAlert(e reminder.Entry) string {
	when := f.format.Time(e.Reminder)
	msg := fmt.Sprintf("⏰ %s (%s) %s", e.Reminder.Description, when, e.Countdown.Label)
	if f.colored {
		return WarningStyle.Render(msg)
	}
	return msg
}

// FormatWelcome renders the banner shown when the REPL starts.
func (f *Formatter) FormatWelcome(source string, count int) string {
	title := "Reminders"
	detail := fmt.Sprintf("%d item(s) from %s · /help for commands", count, source)
	if f.colored {
		return HeaderStyle.Render(title) + "\n" + DimStyle.Render(detail) + "\n\n"
	}
	return title + "\n" + detail + "\n\n"
}

// FormatTable renders entries as a numbered table. Numbers are 1-based.
func (f *Formatter) FormatTable(entries []reminder.Entry) string {
	if len(entries) == 0 {
		return f.FormatInfo("No entries yet. Add some with /add.")
	}

	headers := append([]string{"#"}, reminder.DisplayColumns...)
	rows := make([][]string, len(entries))
	for i, e := range entries {
		cells := f.format.Row(e.Reminder, e.Countdown).Cells()
		rows[i] = append([]string{strconv.Itoa(i + 1)}, cells...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if !f.colored {
				return CellStyle
			}
			if row == table.HeaderRow {
				return CellStyle.Inherit(HeaderStyle)
			}
			return CellStyle.Inherit(f.cellStyle(entries[row], col))
		})
	if f.colored {
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(BorderColor))
	}

	return t.String()
}

// cellStyle highlights critical items and urgent countdowns. col counts the
// leading "#" column.
func (f *Formatter) cellStyle(e reminder.Entry, col int) lipgloss.Style {
	switch col {
	case 1, 2:
		if e.Reminder.IsCritical() {
			return ErrorStyle
		}
	case 4:
		if e.Countdown.DateOverride != "" {
			return WarningStyle
		}
	case 7:
		switch e.Countdown.Label {
		case reminder.LabelLate, reminder.LabelNow:
			return ErrorStyle
		case reminder.LabelPast, reminder.LabelOver:
			return DimStyle
		}
		return AccentStyle
	}
	return lipgloss.NewStyle()
}

const helpMarkdown = `# Commands

| Command | Action |
|---|---|
| /list | Show all reminders |
| /add [YYYY-MM-DD] [HH:MM] text | Add a reminder; date and time are optional |
| /edit n [YYYY-MM-DD] [HH:MM] text | Replace the text and schedule of reminder n |
| /note n text | Set notes; type \n for a line break, empty text clears |
| /repeat n text | Set the repeat text; empty text clears |
| /flag n | Toggle the critical flag |
| /alerts n on or off | Enable or disable alerts |
| /del n | Delete reminder n |
| /help | Show this help |
| /quit | Exit |

Undated reminders stay at the top; the rest are ordered by date and time.
`

// FormatHelp renders the command reference.
func (f *Formatter) FormatHelp() string {
	style := "notty"
	if f.colored {
		style = "auto"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return helpMarkdown
	}

	rendered, err := renderer.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}

	return strings.TrimRight(rendered, "\n") + "\n\n"
}
