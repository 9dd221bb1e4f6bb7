package reminder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps reminders in a SQLite database. Each row holds the same
// six columns as the CSV file plus its position in the list.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// reminders table exists. A newly created database starts with the
// placeholder reminder.
func NewSQLiteStore(ctx context.Context, dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	_, statErr := os.Stat(dbPath)
	fresh := errors.Is(statErr, os.ErrNotExist)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTable(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, logger: logger.With("component", "sqlitestore")}
	if fresh {
		s.logger.Info("creating reminders database", slog.String("path", dbPath))
		if err := s.Save(ctx, []Reminder{Placeholder()}); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func createTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reminders (
			position INTEGER PRIMARY KEY,
			title    TEXT    NOT NULL,
			date     TEXT    NOT NULL DEFAULT '',
			time     TEXT    NOT NULL DEFAULT '',
			flag     TEXT    NOT NULL DEFAULT '',
			notes    TEXT    NOT NULL DEFAULT '',
			repeat   TEXT    NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns all reminders in stored order. Rows that fail to decode are
// skipped and reported; Line is the row's position.
func (s *SQLiteStore) Load(ctx context.Context, now time.Time) (*LoadResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, title, date, time, flag, notes, repeat
		FROM reminders ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	result := &LoadResult{}
	for rows.Next() {
		var position int
		row := make([]string, numColumns)
		if err := rows.Scan(&position, &row[colTitle], &row[colDate], &row[colTime],
			&row[colFlag], &row[colNotes], &row[colRepeat]); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		r, err := FromRow(row, now)
		if err != nil {
			s.logger.Warn("skipping unreadable row", slog.Int("position", position), slog.String("error", err.Error()))
			result.Skipped = append(result.Skipped, SkippedRow{Line: position, Err: err})
			continue
		}
		result.Reminders = append(result.Reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reminders: %w", err)
	}
	return result, nil
}

// Save replaces all rows in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, reminders []Reminder) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders`); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reminders (position, title, date, time, flag, notes, repeat)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range reminders {
		row := r.ToRow()
		if _, err := stmt.ExecContext(ctx, i, row[colTitle], row[colDate], row[colTime],
			row[colFlag], row[colNotes], row[colRepeat]); err != nil {
			return fmt.Errorf("failed to insert reminder: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reminders: %w", err)
	}
	return nil
}
