package reminder

import (
	"fmt"
	"strings"
	"time"
)

// Column order of a stored row.
const (
	colTitle = iota
	colDate
	colTime
	colFlag
	colNotes
	colRepeat
	numColumns
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// timeLayouts are accepted when decoding the Time column.
var timeLayouts = []string{timeLayout, "15:04:05"}

// Header is the first row of every reminders file.
var Header = []string{"Title", "Date", "Time", "Flag", "Notes", "Repeat"}

// ToRow encodes r as the six stored columns.
func (r Reminder) ToRow() []string {
	row := make([]string, numColumns)
	row[colTitle] = r.Description
	if r.Scheduled() {
		row[colDate] = r.When.Format(dateLayout)
		if r.HasTime() {
			row[colTime] = r.When.Format(timeLayout)
		}
	}
	row[colFlag] = r.canonicalFlags()
	row[colNotes] = EncodeNewlines(r.Notes)
	row[colRepeat] = r.Repeat
	return row
}

// FromRow decodes a stored row. Missing trailing columns are read as empty.
// Dates are interpreted in now's location; a time without a date is placed on
// now's date.
func FromRow(row []string, now time.Time) (Reminder, error) {
	col := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	var r Reminder
	r.Description = col(colTitle)
	if strings.TrimSpace(r.Description) == "" {
		return Reminder{}, ErrEmptyDescription
	}

	when, err := ParseWhen(col(colDate), col(colTime), now)
	if err != nil {
		return Reminder{}, err
	}
	r.When = when
	r.flags = col(colFlag)
	r.Notes = DecodeNewlines(col(colNotes))
	r.Repeat = col(colRepeat)
	return r, nil
}

// ParseWhen combines an ISO date and an HH:MM time. Both empty yields the zero
// time, a date alone yields midnight and a time alone lands on now's date.
// Seconds are dropped since the stored Time column has minute precision.
func ParseWhen(dateStr, timeStr string, now time.Time) (time.Time, error) {
	dateStr, timeStr = strings.TrimSpace(dateStr), strings.TrimSpace(timeStr)
	loc := now.Location()

	var (
		date    time.Time
		hasDate bool
	)
	if dateStr != "" {
		d, err := time.ParseInLocation(dateLayout, dateStr, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, dateStr, err)
		}
		date, hasDate = d, true
	}

	if timeStr == "" {
		if !hasDate {
			return time.Time{}, nil
		}
		return date, nil
	}

	clock, err := parseClock(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	if !hasDate {
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

func parseClock(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: expected HH:MM", ErrInvalidTime, s)
}

// EncodeNewlines replaces line breaks with the two characters `\n`.
func EncodeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// DecodeNewlines turns every `\n` sequence back into a line break. Text that
// already contained a literal `\n` before encoding is not distinguished.
func DecodeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
