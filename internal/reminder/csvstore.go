package reminder

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// CSVStore keeps reminders in a UTF-8 CSV file with a header row.
type CSVStore struct {
	path   string
	logger *slog.Logger
}

// NewCSVStore returns a store for the file at path. The file is created on
// first load if it does not exist.
func NewCSVStore(path string, logger *slog.Logger) *CSVStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVStore{
		path:   path,
		logger: logger.With("component", "csvstore"),
	}
}

// Path returns the backing file path.
func (s *CSVStore) Path() string {
	return s.path
}

// Load reads every row after the header. Rows that fail to decode are skipped
// and reported in the result.
func (s *CSVStore) Load(ctx context.Context, now time.Time) (*LoadResult, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		if err := s.initialize(ctx); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &LoadResult{}
	header := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				// A broken first record still occupies the header position.
				header = false
				s.skip(result, parseErr.Line, err)
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
		}
		line, _ := reader.FieldPos(0)
		if header {
			header = false
			continue
		}

		r, err := FromRow(row, now)
		if err != nil {
			s.skip(result, line, err)
			continue
		}
		result.Reminders = append(result.Reminders, r)
	}

	s.logger.Debug("loaded reminders",
		slog.String("path", s.path),
		slog.Int("count", len(result.Reminders)),
		slog.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *CSVStore) skip(result *LoadResult, line int, err error) {
	s.logger.Warn("skipping unreadable row",
		slog.String("path", s.path),
		slog.Int("line", line),
		slog.String("error", err.Error()))
	result.Skipped = append(result.Skipped, SkippedRow{Line: line, Err: err})
}

// Save replaces the file with the header and one row per reminder. The new
// content becomes visible in a single rename.
func (s *CSVStore) Save(ctx context.Context, reminders []Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.writeRows(reminders)
}

func (s *CSVStore) initialize(ctx context.Context) error {
	s.logger.Info("creating reminders file", slog.String("path", s.path))
	return s.Save(ctx, []Reminder{Placeholder()})
}

func (s *CSVStore) writeRows(reminders []Reminder) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range reminders {
		if err := w.Write(r.ToRow()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	s.logger.Debug("saved reminders", slog.String("path", s.path), slog.Int("count", len(reminders)))
	return nil
}
