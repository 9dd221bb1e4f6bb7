package reminder

import "strings"

// Default display layouts.
const (
	DefaultDateLayout = "2 Jan 2006"
	DefaultTimeLayout = "3:04 pm"
)

// DisplayFormat holds the layouts used for the date and time columns.
type DisplayFormat struct {
	DateLayout string
	TimeLayout string
}

// DefaultDisplayFormat returns the built-in layouts.
func DefaultDisplayFormat() DisplayFormat {
	return DisplayFormat{DateLayout: DefaultDateLayout, TimeLayout: DefaultTimeLayout}
}

// DisplayRow is one reminder rendered as table columns.
type DisplayRow struct {
	Flag      string `json:"flag"`
	Item      string `json:"item"`
	Day       string `json:"day"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Repeat    string `json:"repeat,omitempty"`
	Countdown string `json:"countdown"`
}

// DisplayColumns are the column titles matching DisplayRow.Cells.
var DisplayColumns = []string{"!", "Item", "Day", "Date", "Time", "Repeat", "Countdown"}

// Row renders r together with its countdown.
func (f DisplayFormat) Row(r Reminder, c Countdown) DisplayRow {
	row := DisplayRow{
		Item:      r.Description,
		Day:       r.DayOfWeek(),
		Date:      f.Date(r, c),
		Time:      f.Time(r),
		Repeat:    r.Repeat,
		Countdown: c.Label,
	}
	if r.IsCritical() {
		row.Flag = CriticalFlag
	}
	if r.HasNotes() {
		row.Item += "\n" + r.Notes
	}
	return row
}

// Date returns the override when set, otherwise the formatted date.
func (f DisplayFormat) Date(r Reminder, c Countdown) string {
	if c.DateOverride != "" {
		return c.DateOverride
	}
	if !r.Scheduled() {
		return ""
	}
	return r.When.Format(f.DateLayout)
}

// Time returns the formatted, lower-cased time, or "" for date-only reminders.
func (f DisplayFormat) Time(r Reminder) string {
	if !r.HasTime() {
		return ""
	}
	return strings.ToLower(r.When.Format(f.TimeLayout))
}

// Cells returns the row as a slice in DisplayColumns order.
func (d DisplayRow) Cells() []string {
	return []string{d.Flag, d.Item, d.Day, d.Date, d.Time, d.Repeat, d.Countdown}
}
