package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/notexe/reminders/internal/reminder"
)

// StatusDisplay prints background notices, such as due alerts, above the
// prompt. Writes are serialized so ticks never interleave.
type StatusDisplay struct {
	mu        sync.Mutex
	out       io.Writer
	formatter *Formatter
	enabled   bool
}

func NewStatusDisplay(out io.Writer, formatter *Formatter, enabled bool) *StatusDisplay {
	return &StatusDisplay{
		out:       out,
		formatter: formatter,
		enabled:   enabled,
	}
}

func (s *StatusDisplay) Show(message string) {
	if !s.enabled {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, s.formatter.FormatSystem(message))
}

// ShowAlerts prints one line per entry.
func (s *StatusDisplay) ShowAlerts(entries []reminder.Entry) {
	if !s.enabled || len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		fmt.Fprintln(s.out, s.formatter.FormatAlert(e))
	}
}
