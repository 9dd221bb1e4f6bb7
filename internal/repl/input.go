package repl

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/notexe/reminders/internal/reminder"
)

var errUsage = errors.New("usage")

func (r *REPL) readInput() (string, error) {
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func parseCommand(input string) (bool, string, string) {
	if !strings.HasPrefix(input, "/") {
		return false, "", ""
	}

	parts := strings.SplitN(input, " ", 2)
	command := strings.ToLower(parts[0])

	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	return true, command, args
}

// parseIndex converts a 1-based row number into a 0-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w %q", reminder.ErrIndexOutOfRange, s)
	}
	return n - 1, nil
}

// splitIndex separates a leading row number from the rest of args.
func splitIndex(args string) (int, string, error) {
	head, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	if head == "" {
		return 0, "", errUsage
	}
	i, err := parseIndex(head)
	if err != nil {
		return 0, "", err
	}
	return i, strings.TrimSpace(rest), nil
}

// parseSchedule reads "[YYYY-MM-DD] [HH:MM] description". A leading token is
// taken as a date or time only if it parses as one.
func parseSchedule(args string, now time.Time) (time.Time, string, error) {
	fields := strings.Fields(args)

	var dateStr, timeStr string
	if len(fields) > 0 && looksLikeDate(fields[0]) {
		dateStr, fields = fields[0], fields[1:]
	}
	if len(fields) > 0 && looksLikeTime(fields[0]) {
		timeStr, fields = fields[0], fields[1:]
	}

	when, err := reminder.ParseWhen(dateStr, timeStr, now)
	if err != nil {
		return time.Time{}, "", err
	}
	return when, strings.Join(fields, " "), nil
}

func looksLikeDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func looksLikeTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "true":
		return true, nil
	case "off", "no", "false":
		return false, nil
	}
	return false, errUsage
}

func setupReadline() (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              "reminders> ",
		HistoryFile:         "",
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})

	return rl, err
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}
