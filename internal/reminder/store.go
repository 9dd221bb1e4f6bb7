package reminder

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=reminder

// Store loads and saves the full reminder list.
type Store interface {
	Load(ctx context.Context, now time.Time) (*LoadResult, error)
	Save(ctx context.Context, reminders []Reminder) error
}

// LoadResult is what a Store read back, including rows it had to skip.
type LoadResult struct {
	Reminders []Reminder
	Skipped   []SkippedRow
}

// SkippedRow records a stored row that could not be decoded.
type SkippedRow struct {
	Line int
	Err  error
}
