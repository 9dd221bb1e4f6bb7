package reminder

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func TestToRow(t *testing.T) {
	r := New(at(2025, time.March, 4, 14, 30), "Dentist")
	r.Notes = "bring card\nask about bill"
	r.Repeat = `{"type":"weekly"}`
	r.SetAlerts(true)
	r.SetCritical(true)

	want := []string{"Dentist", "2025-03-04", "14:30", "!A", `bring card\nask about bill`, `{"type":"weekly"}`}
	if got := r.ToRow(); !slices.Equal(got, want) {
		t.Errorf("ToRow() = %q, want %q", got, want)
	}
}

func TestToRowDateOnlyAndUnscheduled(t *testing.T) {
	dateOnly := New(at(2025, time.March, 4, 0, 0), "Taxes")
	if got := dateOnly.ToRow(); got[colDate] != "2025-03-04" || got[colTime] != "" {
		t.Errorf("date-only row = %q, want date and empty time", got)
	}

	unscheduled := New(time.Time{}, "Someday")
	if got := unscheduled.ToRow(); got[colDate] != "" || got[colTime] != "" || got[colFlag] != "" {
		t.Errorf("unscheduled row = %q, want empty date, time and flag", got)
	}
}

func TestToRowNormalizesStoredFlags(t *testing.T) {
	r, err := FromRow([]string{"x", "", "", "A!"}, time.Now())
	if err != nil {
		t.Fatalf("FromRow() error = %v", err)
	}
	if r.Flags() != "A!" {
		t.Errorf("Flags() = %q, want verbatim %q", r.Flags(), "A!")
	}
	if got := r.ToRow()[colFlag]; got != "!A" {
		t.Errorf("Flag column = %q, want %q", got, "!A")
	}
}

func TestRoundTrip(t *testing.T) {
	now := at(2025, time.June, 15, 10, 0)

	withFlags := func(r Reminder, critical, alerts bool) Reminder {
		r.SetCritical(critical)
		r.SetAlerts(alerts)
		return r
	}

	tests := []struct {
		name string
		r    Reminder
	}{
		{"unscheduled", New(time.Time{}, "Someday")},
		{"date only", New(at(2025, time.July, 1, 0, 0), "Renew passport")},
		{"date and time", New(at(2025, time.July, 1, 8, 45), "Train")},
		{"critical", withFlags(New(at(2025, time.July, 1, 8, 45), "Train"), true, false)},
		{"alerts", withFlags(New(time.Time{}, "Call mom"), false, true)},
		{"both flags", withFlags(New(at(2026, time.January, 2, 23, 59), "New year"), true, true)},
		{"multi-line notes", Reminder{Description: "Shop", Notes: "milk\neggs\n\nbread"}},
		{"comma and quotes", Reminder{Description: `Say "hi", then leave`, Notes: "a,b"}},
		{"repeat passthrough", Reminder{Description: "Standup", Repeat: `{"type":"daily","interval":1}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromRow(tt.r.ToRow(), now)
			if err != nil {
				t.Fatalf("FromRow() error = %v", err)
			}
			if !got.Equal(tt.r) {
				t.Errorf("round trip = %+v, want %+v", got, tt.r)
			}
		})
	}
}

func TestFromRow(t *testing.T) {
	now := at(2025, time.June, 15, 10, 0)

	tests := []struct {
		name     string
		row      []string
		wantWhen time.Time
		wantErr  error
	}{
		{
			name:     "date and time",
			row:      []string{"a", "2025-07-01", "09:15", ""},
			wantWhen: at(2025, time.July, 1, 9, 15),
		},
		{
			name:     "date only is midnight",
			row:      []string{"a", "2025-07-01", "", ""},
			wantWhen: at(2025, time.July, 1, 0, 0),
		},
		{
			name:     "time only is today",
			row:      []string{"a", "", "18:00", ""},
			wantWhen: at(2025, time.June, 15, 18, 0),
		},
		{
			name: "neither is unscheduled",
			row:  []string{"a", "", "", ""},
		},
		{
			name:     "seconds are dropped",
			row:      []string{"a", "2025-07-01", "09:15:30", ""},
			wantWhen: at(2025, time.July, 1, 9, 15),
		},
		{
			name:    "bad date",
			row:     []string{"a", "2025-13-01", "", ""},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "bad time",
			row:     []string{"a", "2025-07-01", "9am", ""},
			wantErr: ErrInvalidTime,
		},
		{
			name:    "empty title",
			row:     []string{"  ", "2025-07-01", "", ""},
			wantErr: ErrEmptyDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromRow(tt.row, now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FromRow() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromRow() error = %v", err)
			}
			if !got.When.Equal(tt.wantWhen) {
				t.Errorf("When = %v, want %v", got.When, tt.wantWhen)
			}
		})
	}
}

func TestFromRowShortRow(t *testing.T) {
	r, err := FromRow([]string{"Pay rent", "2025-07-01", "", "!"}, time.Now())
	if err != nil {
		t.Fatalf("FromRow() error = %v", err)
	}
	if r.Notes != "" || r.Repeat != "" {
		t.Errorf("Notes, Repeat = %q, %q, want empty", r.Notes, r.Repeat)
	}
	if !r.IsCritical() {
		t.Error("IsCritical() = false, want true")
	}
}

func TestNewlineEscaping(t *testing.T) {
	tests := []string{
		"",
		"single line",
		"two\nlines",
		"\n\nleading",
		"trailing\n",
	}
	for _, s := range tests {
		encoded := EncodeNewlines(s)
		for _, c := range encoded {
			if c == '\n' {
				t.Errorf("EncodeNewlines(%q) = %q contains a line break", s, encoded)
			}
		}
		if got := DecodeNewlines(encoded); got != s {
			t.Errorf("DecodeNewlines(EncodeNewlines(%q)) = %q", s, got)
		}
	}

	if got := DecodeNewlines("no escapes here"); got != "no escapes here" {
		t.Errorf("DecodeNewlines() changed plain text: %q", got)
	}
}

func TestNewlineEscapingLiteralSequence(t *testing.T) {
	// A typed backslash-n is indistinguishable from an escaped line break.
	if got := DecodeNewlines(EncodeNewlines(`C:\new`)); got != "C:\new" {
		t.Errorf("got %q", got)
	}
}
