package reminder

import (
	"fmt"
	"time"
)

// Countdown labels and date overrides produced by Classify.
const (
	LabelPast = "Past"
	LabelLate = "LATE"
	LabelOver = "Over"
	LabelNow  = "NOW"

	OverrideToday    = "TODAY"
	OverrideTomorrow = "TOMORROW"
)

const secondsPerDay = 24 * 60 * 60

// LateWindow is how long after its time a reminder keeps reporting LATE.
const LateWindow = time.Hour

// Countdown is the urgency label for one reminder at a given instant, plus the
// text to show instead of the date when it is today or tomorrow.
type Countdown struct {
	Label        string `json:"countdown"`
	DateOverride string `json:"date_override,omitempty"`
}

// Classify computes the countdown for r as seen at now. Dates are compared in
// now's location. Date-only reminders that fall today get the TODAY override
// and no label.
func Classify(now time.Time, r Reminder) Countdown {
	if !r.Scheduled() {
		return Countdown{}
	}

	now = now.Truncate(time.Second)
	when := r.When.In(now.Location())

	days := dayDelta(now, when)
	switch {
	case days > 1:
		return Countdown{Label: "in " + pluralize(days, "day")}
	case days == 1:
		return Countdown{Label: "in 1 day", DateOverride: OverrideTomorrow}
	case days < 0:
		return Countdown{Label: LabelPast}
	}

	c := Countdown{DateOverride: OverrideToday}
	if !r.HasTime() {
		return c
	}

	seconds := int64(when.Sub(now) / time.Second)
	if seconds < 0 {
		if seconds > -int64(LateWindow/time.Second) {
			c.Label = LabelLate
		} else {
			c.Label = LabelOver
		}
		return c
	}

	minutes := int(seconds / 60)
	if minutes == 0 {
		c.Label = LabelNow
		return c
	}

	snapped := minutes / 15 * 15
	hours, mins := snapped/60, snapped%60
	switch {
	case hours >= 2:
		c.Label = fmt.Sprintf("in %d hours", hours)
	case hours == 1 && mins == 0:
		c.Label = "in 1 hour"
	case hours == 1:
		c.Label = fmt.Sprintf("in 1 hour, %d min", mins)
	case mins > 15:
		c.Label = fmt.Sprintf("in %d minutes", mins)
	default:
		c.Label = "in " + pluralize(mins, "minute")
	}
	return c
}

// dayDelta returns the number of calendar days from a's date to b's date.
func dayDelta(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int((bd.Unix() - ad.Unix()) / secondsPerDay)
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
