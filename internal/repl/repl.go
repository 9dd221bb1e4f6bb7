package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/notexe/reminders/internal/config"
	"github.com/notexe/reminders/internal/reminder"
	"github.com/notexe/reminders/internal/scheduler"
	"github.com/notexe/reminders/internal/ui"
)

var usages = map[string]string{
	"/add":    "/add [YYYY-MM-DD] [HH:MM] <text>",
	"/edit":   "/edit <n> [YYYY-MM-DD] [HH:MM] <text>",
	"/note":   "/note <n> [text]",
	"/repeat": "/repeat <n> [text]",
	"/flag":   "/flag <n>",
	"/alerts": "/alerts <n> on|off",
	"/del":    "/del <n>",
}

type REPL struct {
	collection *reminder.Collection
	config     *config.Config
	rl         *readline.Instance
	out        io.Writer
	formatter  *ui.Formatter
	status     *ui.StatusDisplay
	ticker     *scheduler.Ticker
	now        func() time.Time
	logger     *slog.Logger

	mu      sync.Mutex
	alerted map[string]time.Time // alert key to scheduled time
}

func NewREPL(collection *reminder.Collection, cfg *config.Config, logger *slog.Logger) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	r := newREPL(collection, cfg, rl.Stdout(), logger)
	r.rl = rl
	return r, nil
}

func newREPL(collection *reminder.Collection, cfg *config.Config, out io.Writer, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.Default()
	}
	formatter := ui.NewFormatter(cfg.UI.ColoredOutput, cfg.DisplayFormat())

	return &REPL{
		collection: collection,
		config:     cfg,
		out:        out,
		formatter:  formatter,
		status:     ui.NewStatusDisplay(out, formatter, true),
		ticker:     scheduler.New(cfg.TickInterval(), logger),
		now:        time.Now,
		logger:     logger.With("component", "repl"),
		alerted:    make(map[string]time.Time),
	}
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	r.displayWelcome()
	r.displayList()

	tickCtx, stopTicker := context.WithCancel(ctx)
	defer stopTicker()
	go func() {
		if err := r.ticker.Run(tickCtx, r.onTick); err != nil {
			r.logger.Error("ticker stopped", slog.Any("error", err))
		}
	}()

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := parseCommand(input)
		if !isCommand {
			r.displayError(fmt.Errorf("commands start with / (type /help for available commands)"))
			continue
		}

		if err := r.handleCommand(ctx, command, args); err != nil {
			r.displayError(err)
		}

		if command == "/quit" || command == "/exit" || command == "/q" {
			return nil
		}
	}
}

func (r *REPL) Stop() {
	r.rl.Close()
}

// onTick refreshes countdowns and announces alert-enabled reminders that have
// come due. Each reminder is announced once per scheduled time.
func (r *REPL) onTick(now time.Time) {
	r.collection.RecomputeCountdowns(now)

	due := r.collection.DueForAlert(now, r.config.AlertLead())

	r.mu.Lock()
	for key, when := range r.alerted {
		if now.Sub(when) >= reminder.LateWindow {
			delete(r.alerted, key)
		}
	}
	fresh := due[:0:0]
	for _, e := range due {
		key := alertKey(e.Reminder)
		if _, seen := r.alerted[key]; !seen {
			r.alerted[key] = e.Reminder.When
			fresh = append(fresh, e)
		}
	}
	r.mu.Unlock()

	if len(fresh) > 0 {
		r.logger.Debug("alerts due", slog.Int("count", len(fresh)))
	}
	r.status.ShowAlerts(fresh)
}

func alertKey(rem reminder.Reminder) string {
	return rem.When.Format(time.RFC3339) + "|" + rem.Description
}

func (r *REPL) handleCommand(ctx context.Context, command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/list", "/l", "/ls":
		r.displayList()
		return nil

	case "/add", "/a":
		return r.handleAdd(ctx, args)

	case "/edit", "/e":
		return r.handleEdit(ctx, args)

	case "/note", "/n":
		return r.handleText(ctx, "/note", args, func(rem *reminder.Reminder, text string) {
			rem.Notes = reminder.DecodeNewlines(text)
		})

	case "/repeat":
		return r.handleText(ctx, "/repeat", args, func(rem *reminder.Reminder, text string) {
			rem.Repeat = text
		})

	case "/flag", "/f":
		i, err := r.index("/flag", args)
		if err != nil {
			return err
		}
		if err := r.collection.ToggleCritical(ctx, i); err != nil {
			return err
		}
		r.displayList()
		return nil

	case "/alerts":
		i, rest, err := splitIndex(args)
		if err != nil {
			return usageError("/alerts", err)
		}
		on, err := parseSwitch(rest)
		if err != nil {
			return usageError("/alerts", err)
		}
		if err := r.collection.SetAlerts(ctx, i, on); err != nil {
			return err
		}
		r.displaySystem(fmt.Sprintf("Alerts %s for #%d.", onOff(on), i+1))
		return nil

	case "/del", "/d", "/rm":
		i, err := r.index("/del", args)
		if err != nil {
			return err
		}
		if err := r.collection.Delete(ctx, i); err != nil {
			return err
		}
		r.displaySystem(fmt.Sprintf("Deleted #%d.", i+1))
		r.displayList()
		return nil

	case "/quit", "/exit", "/q":
		fmt.Fprintln(r.out, "\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

func (r *REPL) handleAdd(ctx context.Context, args string) error {
	when, desc, err := parseSchedule(args, r.now())
	if err != nil {
		return err
	}
	if desc == "" {
		return usageError("/add", errUsage)
	}

	i, err := r.collection.Add(ctx, reminder.New(when, desc))
	if err != nil {
		return err
	}
	r.displaySystem(fmt.Sprintf("Added as #%d.", i+1))
	r.displayList()
	return nil
}

func (r *REPL) handleEdit(ctx context.Context, args string) error {
	i, rest, err := splitIndex(args)
	if err != nil {
		return usageError("/edit", err)
	}
	rem, err := r.collection.Get(i)
	if err != nil {
		return err
	}

	when, desc, err := parseSchedule(rest, r.now())
	if err != nil {
		return err
	}
	if desc == "" {
		return usageError("/edit", errUsage)
	}
	rem.When = when
	rem.Description = desc

	j, err := r.collection.Update(ctx, i, rem)
	if err != nil {
		return err
	}
	r.displaySystem(fmt.Sprintf("Updated #%d.", j+1))
	r.displayList()
	return nil
}

// handleText sets one free-text field; empty text clears it.
func (r *REPL) handleText(ctx context.Context, command, args string, set func(*reminder.Reminder, string)) error {
	i, text, err := splitIndex(args)
	if err != nil {
		return usageError(command, err)
	}
	rem, err := r.collection.Get(i)
	if err != nil {
		return err
	}

	set(&rem, text)
	if _, err := r.collection.Update(ctx, i, rem); err != nil {
		return err
	}
	r.displayList()
	return nil
}

func (r *REPL) index(command, args string) (int, error) {
	i, _, err := splitIndex(args)
	if err != nil {
		return 0, usageError(command, err)
	}
	return i, nil
}

func usageError(command string, err error) error {
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: %s", usages[command])
	}
	return err
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
