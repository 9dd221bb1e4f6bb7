package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

// Entry pairs a reminder with its most recently computed countdown.
type Entry struct {
	Reminder  Reminder
	Countdown Countdown
}

// Collection is the ordered reminder list and the only writer to its Store.
// Every mutation re-sorts and saves before it returns; a failed save leaves
// the list unchanged. Methods are safe for concurrent use.
type Collection struct {
	mu         sync.Mutex
	store      Store
	items      []Reminder
	countdowns []Countdown
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Collection.
type Option func(*Collection)

// WithClock sets the function used for "now" when countdowns are refreshed
// after a mutation.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		c.logger = logger
	}
}

// Open loads the collection from store and sorts it.
func Open(ctx context.Context, store Store, opts ...Option) (*Collection, *LoadResult, error) {
	c := &Collection{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "collection")

	now := c.now()
	result, err := store.Load(ctx, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load reminders: %w", err)
	}

	c.items = slices.Clone(result.Reminders)
	Sort(c.items)
	c.recompute(now)
	return c, result, nil
}

// Len returns the number of reminders.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Get returns the reminder at index i.
func (c *Collection) Get(i int) (Reminder, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(i); err != nil {
		return Reminder{}, err
	}
	return c.items[i], nil
}

// Reminders returns a copy of the list in display order.
func (c *Collection) Reminders() []Reminder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Entries returns every reminder with its cached countdown.
func (c *Collection) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries := make([]Entry, len(c.items))
	for i, r := range c.items {
		entries[i] = Entry{Reminder: r, Countdown: c.countdowns[i]}
	}
	return entries
}

// RecomputeCountdowns refreshes the countdown cache for now and returns it.
func (c *Collection) RecomputeCountdowns(now time.Time) []Countdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recompute(now)
	return slices.Clone(c.countdowns)
}

// DueForAlert returns alert-enabled reminders with a time of day that fall in
// [now, now+lead) or that Classify still reports as LATE.
func (c *Collection) DueForAlert(now time.Time, lead time.Duration) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	now = now.Truncate(time.Second)
	var due []Entry
	for _, r := range c.items {
		if !r.AlertsEnabled() || !r.HasTime() {
			continue
		}
		until := r.When.Sub(now)
		if until >= lead {
			continue
		}
		countdown := Classify(now, r)
		if until < 0 && countdown.Label != LabelLate {
			continue
		}
		due = append(due, Entry{Reminder: r, Countdown: countdown})
	}
	return due
}

// Add inserts r and returns its index after sorting.
func (c *Collection) Add(ctx context.Context, r Reminder) (int, error) {
	if err := validate(r); err != nil {
		return -1, err
	}
	r.When = truncateToMinute(r.When)

	c.mu.Lock()
	defer c.mu.Unlock()

	next := append(slices.Clone(c.items), r)
	return c.commit(ctx, next, len(next)-1)
}

// Update replaces the reminder at index i and returns its new index.
func (c *Collection) Update(ctx context.Context, i int, r Reminder) (int, error) {
	if err := validate(r); err != nil {
		return -1, err
	}
	r.When = truncateToMinute(r.When)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(i); err != nil {
		return -1, err
	}

	next := slices.Clone(c.items)
	next[i] = r
	return c.commit(ctx, next, i)
}

// Delete removes the reminder at index i.
func (c *Collection) Delete(ctx context.Context, i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(i); err != nil {
		return err
	}

	next := slices.Delete(slices.Clone(c.items), i, i+1)
	_, err := c.commit(ctx, next, -1)
	return err
}

// ToggleCritical flips the critical marker of the reminder at index i.
func (c *Collection) ToggleCritical(ctx context.Context, i int) error {
	return c.modify(ctx, i, func(r *Reminder) {
		r.ToggleCritical()
	})
}

// SetAlerts sets the alerts marker of the reminder at index i.
func (c *Collection) SetAlerts(ctx context.Context, i int, on bool) error {
	return c.modify(ctx, i, func(r *Reminder) {
		r.SetAlerts(on)
	})
}

func (c *Collection) modify(ctx context.Context, i int, fn func(*Reminder)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIndex(i); err != nil {
		return err
	}

	next := slices.Clone(c.items)
	fn(&next[i])
	_, err := c.commit(ctx, next, i)
	return err
}

// commit sorts next, saves it and makes it current. track is the index of a
// reminder in next whose sorted position is returned, or -1.
func (c *Collection) commit(ctx context.Context, next []Reminder, track int) (int, error) {
	order := make([]int, len(next))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return Compare(next[a], next[b])
	})

	sorted := make([]Reminder, len(next))
	pos := -1
	for i, j := range order {
		sorted[i] = next[j]
		if j == track {
			pos = i
		}
	}

	if err := c.store.Save(ctx, sorted); err != nil {
		c.logger.Error("save failed", slog.String("error", err.Error()))
		return -1, fmt.Errorf("failed to save reminders: %w", err)
	}

	c.items = sorted
	c.recompute(c.now())
	return pos, nil
}

func (c *Collection) recompute(now time.Time) {
	c.countdowns = make([]Countdown, len(c.items))
	for i, r := range c.items {
		c.countdowns[i] = Classify(now, r)
	}
}

func (c *Collection) checkIndex(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(c.items))
	}
	return nil
}

// truncateToMinute drops seconds on the wall clock, matching what a save keeps.
func truncateToMinute(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

func validate(r Reminder) error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.ContainsAny(r.Description, "\r\n") {
		return ErrMultilineDescription
	}
	return nil
}
