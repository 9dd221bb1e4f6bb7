package reminder

import "slices"

// Compare orders unscheduled reminders before scheduled ones, and scheduled
// ones by date and time.
func Compare(a, b Reminder) int {
	switch {
	case !a.Scheduled() && !b.Scheduled():
		return 0
	case !a.Scheduled():
		return -1
	case !b.Scheduled():
		return 1
	}
	return a.When.Compare(b.When)
}

// Sort orders reminders in place. Equal keys keep their relative order.
func Sort(reminders []Reminder) {
	slices.SortStableFunc(reminders, Compare)
}
