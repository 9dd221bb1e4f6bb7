package reminder

import (
	"strings"
	"time"
)

// Flag markers as stored in the Flag column.
const (
	CriticalFlag = "!"
	AlertsFlag   = "A"
)

// PlaceholderDescription is the text of the single record written into a new store.
const PlaceholderDescription = "No entries yet. Add some!"

// Reminder represents one scheduled or unscheduled item.
//
// A zero When means the reminder has no schedule. A When at exactly midnight
// is a date-only reminder.
type Reminder struct {
	When        time.Time
	Description string
	Notes       string
	Repeat      string

	flags string
}

// New creates a reminder with no flags set.
func New(when time.Time, description string) Reminder {
	return Reminder{When: when, Description: description}
}

// Placeholder returns the record a freshly created store starts with.
func Placeholder() Reminder {
	r := New(time.Time{}, PlaceholderDescription)
	r.SetCritical(true)
	return r
}

// Scheduled reports whether the reminder has a date.
func (r Reminder) Scheduled() bool {
	return !r.When.IsZero()
}

// HasTime reports whether the reminder carries a time of day other than midnight.
func (r Reminder) HasTime() bool {
	if !r.Scheduled() {
		return false
	}
	return r.When.Hour() != 0 || r.When.Minute() != 0
}

// HasNotes reports whether the reminder has notes.
func (r Reminder) HasNotes() bool {
	return r.Notes != ""
}

// DayOfWeek returns the abbreviated weekday of the scheduled date, or "".
func (r Reminder) DayOfWeek() string {
	if !r.Scheduled() {
		return ""
	}
	return r.When.Format("Mon")
}

// IsCritical reports whether the critical marker is present.
func (r Reminder) IsCritical() bool {
	return strings.Contains(r.flags, CriticalFlag)
}

// AlertsEnabled reports whether the alerts marker is present.
func (r Reminder) AlertsEnabled() bool {
	return strings.Contains(r.flags, AlertsFlag)
}

// Flags returns the flag string as held by the record. Values read from storage
// are kept verbatim until one of the setters runs.
func (r Reminder) Flags() string {
	return r.flags
}

// SetCritical sets or clears the critical marker.
func (r *Reminder) SetCritical(on bool) {
	r.flags = buildFlags(on, r.AlertsEnabled())
}

// SetAlerts sets or clears the alerts marker.
func (r *Reminder) SetAlerts(on bool) {
	r.flags = buildFlags(r.IsCritical(), on)
}

// ToggleCritical flips the critical marker.
func (r *Reminder) ToggleCritical() {
	r.SetCritical(!r.IsCritical())
}

// canonicalFlags returns the flag string in canonical order.
func (r Reminder) canonicalFlags() string {
	return buildFlags(r.IsCritical(), r.AlertsEnabled())
}

// buildFlags always rebuilds from scratch: critical marker first, then alerts.
func buildFlags(critical, alerts bool) string {
	var b strings.Builder
	if critical {
		b.WriteString(CriticalFlag)
	}
	if alerts {
		b.WriteString(AlertsFlag)
	}
	return b.String()
}

// Equal reports whether two reminders hold the same persisted values.
// Flags are compared by meaning, not by their stored order.
func (r Reminder) Equal(o Reminder) bool {
	return r.When.Equal(o.When) &&
		r.Description == o.Description &&
		r.Notes == o.Notes &&
		r.Repeat == o.Repeat &&
		r.IsCritical() == o.IsCritical() &&
		r.AlertsEnabled() == o.AlertsEnabled()
}
