package reminder

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
)

var errDiskFull = errors.New("disk full")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func openWith(t *testing.T, store Store, now time.Time) *Collection {
	t.Helper()
	c, _, err := Open(context.Background(), store, WithClock(fixedClock(now)), WithLogger(discardLogger()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return c
}

func TestCollectionOpenSorts(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	now := at(2025, time.June, 15, 10, 0)

	store.EXPECT().Load(gomock.Any(), now).Return(&LoadResult{Reminders: []Reminder{
		New(at(2025, time.June, 16, 9, 0), "tomorrow"),
		New(time.Time{}, "undated"),
		New(at(2025, time.June, 15, 9, 50), "late"),
	}}, nil)

	c := openWith(t, store, now)

	entries := c.Entries()
	var got []string
	for _, e := range entries {
		got = append(got, e.Reminder.Description+":"+e.Countdown.Label)
	}
	want := []string{"undated:", "late:LATE", "tomorrow:in 1 day"}
	if !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestCollectionOpenLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, errDiskFull)

	if _, _, err := Open(context.Background(), store, WithLogger(discardLogger())); !errors.Is(err, errDiskFull) {
		t.Errorf("Open() error = %v, want %v", err, errDiskFull)
	}
}

func TestCollectionAddSortsAndSaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	now := at(2025, time.June, 15, 10, 0)

	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&LoadResult{Reminders: []Reminder{
		New(time.Time{}, "undated"),
		New(at(2025, time.June, 20, 9, 0), "later"),
	}}, nil)

	var saved []Reminder
	store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rs []Reminder) error {
		saved = rs
		return nil
	})

	c := openWith(t, store, now)
	idx, err := c.Add(context.Background(), New(at(2025, time.June, 15, 12, 7), "soon"))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if idx != 1 {
		t.Errorf("Add() index = %d, want 1", idx)
	}

	want := []string{"undated", "soon", "later"}
	if got := descriptions(saved); !slices.Equal(got, want) {
		t.Errorf("saved %v, want %v", got, want)
	}
	if got := descriptions(c.Reminders()); !slices.Equal(got, want) {
		t.Errorf("collection %v, want %v", got, want)
	}
	if got := c.Entries()[1].Countdown.Label; got != "in 2 hours" {
		t.Errorf("countdown = %q, want %q", got, "in 2 hours")
	}
}

func TestCollectionFailedSaveKeepsState(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	ctx := context.Background()

	original := []Reminder{New(time.Time{}, "a"), New(at(2025, time.June, 20, 9, 0), "b")}
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&LoadResult{Reminders: original}, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errDiskFull).Times(5)

	c := openWith(t, store, at(2025, time.June, 15, 10, 0))

	if _, err := c.Add(ctx, New(time.Time{}, "c")); !errors.Is(err, errDiskFull) {
		t.Errorf("Add() error = %v, want %v", err, errDiskFull)
	}
	if _, err := c.Update(ctx, 0, New(time.Time{}, "changed")); !errors.Is(err, errDiskFull) {
		t.Errorf("Update() error = %v, want %v", err, errDiskFull)
	}
	if err := c.Delete(ctx, 1); !errors.Is(err, errDiskFull) {
		t.Errorf("Delete() error = %v, want %v", err, errDiskFull)
	}
	if err := c.ToggleCritical(ctx, 0); !errors.Is(err, errDiskFull) {
		t.Errorf("ToggleCritical() error = %v, want %v", err, errDiskFull)
	}
	if err := c.SetAlerts(ctx, 0, true); !errors.Is(err, errDiskFull) {
		t.Errorf("SetAlerts() error = %v, want %v", err, errDiskFull)
	}

	got := c.Reminders()
	if len(got) != len(original) {
		t.Fatalf("len = %d, want %d", len(got), len(original))
	}
	for i := range original {
		if !got[i].Equal(original[i]) || got[i].Flags() != original[i].Flags() {
			t.Errorf("reminder %d = %+v, want %+v", i, got[i], original[i])
		}
	}
}

func TestCollectionValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	ctx := context.Background()
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&LoadResult{Reminders: []Reminder{New(time.Time{}, "a")}}, nil)

	c := openWith(t, store, time.Now())

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"add empty", func() error { _, err := c.Add(ctx, New(time.Time{}, " ")); return err }, ErrEmptyDescription},
		{"add multi-line", func() error { _, err := c.Add(ctx, New(time.Time{}, "a\nb")); return err }, ErrMultilineDescription},
		{"update out of range", func() error { _, err := c.Update(ctx, 1, New(time.Time{}, "x")); return err }, ErrIndexOutOfRange},
		{"delete negative", func() error { return c.Delete(ctx, -1) }, ErrIndexOutOfRange},
		{"toggle out of range", func() error { return c.ToggleCritical(ctx, 3) }, ErrIndexOutOfRange},
		{"get out of range", func() error { _, err := c.Get(1); return err }, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCollectionWithCSVStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reminders.csv")
	now := at(2025, time.June, 15, 10, 0)

	c := openWith(t, NewCSVStore(path, discardLogger()), now)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want placeholder only", c.Len())
	}

	if err := c.Delete(ctx, 0); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Add(ctx, New(at(2025, time.June, 16, 8, 0), "Dentist")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	idx, err := c.Add(ctx, New(time.Time{}, "Call bank"))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if idx != 0 {
		t.Errorf("undated reminder index = %d, want 0", idx)
	}
	if err := c.SetAlerts(ctx, 1, true); err != nil {
		t.Fatalf("SetAlerts() error = %v", err)
	}
	if err := c.ToggleCritical(ctx, 1); err != nil {
		t.Fatalf("ToggleCritical() error = %v", err)
	}

	updated, err := c.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	updated.When = at(2025, time.June, 14, 8, 0)
	if _, err := c.Update(ctx, 1, updated); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	reopened := openWith(t, NewCSVStore(path, discardLogger()), now)
	got := reopened.Reminders()
	if want := []string{"Call bank", "Dentist"}; !slices.Equal(descriptions(got), want) {
		t.Fatalf("reopened %v, want %v", descriptions(got), want)
	}
	if got[1].Flags() != "!A" {
		t.Errorf("Flags() = %q, want %q", got[1].Flags(), "!A")
	}
	if label := reopened.Entries()[1].Countdown.Label; label != LabelPast {
		t.Errorf("countdown = %q, want %q", label, LabelPast)
	}
}

func TestCollectionUpdateMovesReminder(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&LoadResult{Reminders: []Reminder{
		New(at(2025, time.June, 1, 9, 0), "first"),
		New(at(2025, time.June, 2, 9, 0), "second"),
		New(at(2025, time.June, 3, 9, 0), "third"),
	}}, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	c := openWith(t, store, at(2025, time.June, 1, 8, 0))
	idx, err := c.Update(context.Background(), 0, New(at(2025, time.June, 4, 9, 0), "first"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if idx != 2 {
		t.Errorf("Update() index = %d, want 2", idx)
	}
}

func TestCollectionRecomputeIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&LoadResult{Reminders: []Reminder{
		New(at(2025, time.June, 15, 12, 0), "noon"),
	}}, nil)

	c := openWith(t, store, at(2025, time.June, 15, 8, 0))

	later := at(2025, time.June, 15, 11, 0)
	first := c.RecomputeCountdowns(later)
	second := c.RecomputeCountdowns(later)
	if !slices.Equal(first, second) {
		t.Errorf("recompute not idempotent: %v vs %v", first, second)
	}
	if first[0].Label != "in 1 hour" {
		t.Errorf("Label = %q, want %q", first[0].Label, "in 1 hour")
	}

	// A jump backwards is just another input.
	earlier := c.RecomputeCountdowns(at(2025, time.June, 14, 12, 0))
	if earlier[0].Label != "in 1 day" {
		t.Errorf("Label = %q, want %q", earlier[0].Label, "in 1 day")
	}
}

func TestCollectionDueForAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	now := at(2025, time.June, 15, 10, 0)

	withAlerts := func(r Reminder) Reminder {
		r.SetAlerts(true)
		return r
	}
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&LoadResult{Reminders: []Reminder{
		withAlerts(New(time.Time{}, "undated")),
		withAlerts(New(at(2025, time.June, 15, 0, 0), "date only")),
		withAlerts(New(at(2025, time.June, 15, 9, 30), "late")),
		withAlerts(New(at(2025, time.June, 15, 8, 0), "over")),
		withAlerts(New(at(2025, time.June, 15, 9, 0), "exactly an hour ago")),
		withAlerts(New(at(2025, time.June, 15, 10, 10), "soon")),
		withAlerts(New(at(2025, time.June, 15, 10, 15), "at lead edge")),
		New(at(2025, time.June, 15, 10, 5), "no alerts"),
	}}, nil)

	c := openWith(t, store, now)

	var got []string
	for _, e := range c.DueForAlert(now, 15*time.Minute) {
		got = append(got, e.Reminder.Description+":"+e.Countdown.Label)
	}
	want := []string{"late:LATE", "soon:in 0 minutes"}
	if !slices.Equal(got, want) {
		t.Errorf("DueForAlert() = %v, want %v", got, want)
	}
}

func TestCollectionDropsSecondsBeforeSaving(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reminders.csv")
	now := at(2025, time.June, 15, 9, 0)

	when, err := ParseWhen("2025-06-15", "10:00:45", now)
	if err != nil {
		t.Fatalf("ParseWhen() error = %v", err)
	}

	c := openWith(t, NewCSVStore(path, discardLogger()), now)
	i, err := c.Add(ctx, New(when, "Standup"))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	j, err := c.Add(ctx, New(at(2025, time.June, 15, 11, 0).Add(30*time.Second), "Review"))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reopened := openWith(t, NewCSVStore(path, discardLogger()), now)
	for _, idx := range []int{i, j} {
		inMemory, _ := c.Get(idx)
		reloaded, _ := reopened.Get(idx)
		if !inMemory.When.Equal(reloaded.When) {
			t.Errorf("memory %v != reloaded %v", inMemory.When, reloaded.When)
		}
		if inMemory.When.Second() != 0 {
			t.Errorf("When = %v, want whole minutes", inMemory.When)
		}
	}
}

func TestCollectionDueForAlertMatchesLateWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	now := at(2025, time.June, 16, 0, 10)

	withAlerts := func(r Reminder) Reminder {
		r.SetAlerts(true)
		return r
	}
	store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(&LoadResult{Reminders: []Reminder{
		withAlerts(New(at(2025, time.June, 15, 23, 30), "yesterday evening")),
		withAlerts(New(at(2025, time.June, 16, 0, 5), "just late")),
	}}, nil)

	c := openWith(t, store, now)

	var got []string
	for _, e := range c.DueForAlert(now, 15*time.Minute) {
		got = append(got, e.Reminder.Description+":"+e.Countdown.Label)
	}
	if want := []string{"just late:LATE"}; !slices.Equal(got, want) {
		t.Errorf("DueForAlert() = %v, want %v", got, want)
	}
}
