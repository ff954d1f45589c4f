package slotwatch

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateWindow_Dates_Default(t *testing.T) {
	today := day(2026, time.September, 1)

	dates := DateWindow{}.dates(today, discardLogger())

	if len(dates) != maxLookaheadDays+1 {
		t.Fatalf("expected %d dates, got %d", maxLookaheadDays+1, len(dates))
	}
	if !dates[0].Equal(day(2026, time.September, 2)) {
		t.Errorf("first date = %s, want tomorrow", dates[0].Format(time.DateOnly))
	}
	if !dates[len(dates)-1].Equal(day(2026, time.October, 2)) {
		t.Errorf("last date = %s, want tomorrow+30", dates[len(dates)-1].Format(time.DateOnly))
	}

	// strictly increasing and contiguous
	for i := 1; i < len(dates); i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("dates not contiguous at index %d: %s then %s",
				i, dates[i-1].Format(time.DateOnly), dates[i].Format(time.DateOnly))
		}
	}
}

func TestDateWindow_Dates_Bounded(t *testing.T) {
	today := day(2026, time.September, 1)
	w := DateWindow{
		Start: day(2026, time.September, 5),
		End:   day(2026, time.September, 8),
	}

	dates := w.dates(today, discardLogger())

	if len(dates) != 4 {
		t.Fatalf("expected 4 dates, got %d", len(dates))
	}
	if !dates[0].Equal(w.Start) || !dates[3].Equal(w.End) {
		t.Errorf("dates = [%s .. %s], want [%s .. %s]",
			dates[0].Format(time.DateOnly), dates[3].Format(time.DateOnly),
			w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
	}
}

func TestDateWindow_Dates_ClampsStartToTomorrow(t *testing.T) {
	today := day(2026, time.September, 1)
	w := DateWindow{
		Start: day(2026, time.August, 20), // before tomorrow
		End:   day(2026, time.September, 4),
	}

	dates := w.dates(today, discardLogger())

	if !dates[0].Equal(day(2026, time.September, 2)) {
		t.Errorf("first date = %s, want clamped to tomorrow", dates[0].Format(time.DateOnly))
	}
}

func TestDateWindow_Dates_ClampsEndToLookahead(t *testing.T) {
	today := day(2026, time.September, 1)
	w := DateWindow{
		Start: day(2026, time.September, 25),
		End:   day(2026, time.December, 31), // far past the lookahead limit
	}

	dates := w.dates(today, discardLogger())

	last := dates[len(dates)-1]
	if !last.Equal(day(2026, time.October, 2)) {
		t.Errorf("last date = %s, want clamped to tomorrow+30", last.Format(time.DateOnly))
	}
}

func TestDateWindow_Dates_WindowEntirelyInPast(t *testing.T) {
	// a window that was valid when the process started can drift fully
	// before tomorrow while it runs; it collapses to a single date
	today := day(2026, time.September, 10)
	w := DateWindow{
		Start: day(2026, time.September, 1),
		End:   day(2026, time.September, 5),
	}

	dates := w.dates(today, discardLogger())

	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	if !dates[0].Equal(day(2026, time.September, 11)) {
		t.Errorf("date = %s, want tomorrow", dates[0].Format(time.DateOnly))
	}
}

func TestDateWindow_Validate(t *testing.T) {
	ok := DateWindow{Start: day(2026, time.September, 5), End: day(2026, time.September, 5)}
	if err := ok.validate(); err != nil {
		t.Errorf("validate() on single-day window error = %v", err)
	}

	if err := (DateWindow{}).validate(); err != nil {
		t.Errorf("validate() on zero window error = %v", err)
	}

	inverted := DateWindow{Start: day(2026, time.September, 8), End: day(2026, time.September, 5)}
	err := inverted.validate()

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("validate() error = %v, want *ConfigError", err)
	}
	if cfgErr.Kind != KindInvalidWindow {
		t.Errorf("ConfigError.Kind = %q, want %q", cfgErr.Kind, KindInvalidWindow)
	}
}

func TestChunkDates(t *testing.T) {
	var dates []time.Time
	for i := 0; i < 12; i++ {
		dates = append(dates, day(2026, time.September, 2+i))
	}

	chunks := chunkDates(dates, 5)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 5 || len(chunks[1]) != 5 || len(chunks[2]) != 2 {
		t.Errorf("chunk sizes = %d,%d,%d, want 5,5,2",
			len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	// concatenating the chunks reproduces the input
	var flat []time.Time
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	if len(flat) != len(dates) {
		t.Fatalf("concatenated length = %d, want %d", len(flat), len(dates))
	}
	for i := range flat {
		if !flat[i].Equal(dates[i]) {
			t.Errorf("flat[%d] = %s, want %s",
				i, flat[i].Format(time.DateOnly), dates[i].Format(time.DateOnly))
		}
	}
}

func TestChunkDates_Degenerate(t *testing.T) {
	if got := chunkDates(nil, 5); got != nil {
		t.Errorf("chunkDates(nil) = %v, want nil", got)
	}
	if got := chunkDates([]time.Time{day(2026, time.September, 2)}, 0); got != nil {
		t.Errorf("chunkDates(size=0) = %v, want nil", got)
	}

	single := chunkDates([]time.Time{day(2026, time.September, 2)}, 5)
	if len(single) != 1 || len(single[0]) != 1 {
		t.Errorf("chunkDates on short input = %v, want one chunk of one date", single)
	}
}
