package slotwatch

import (
	"log/slog"
	"time"
)

// maxLookaheadDays is how far past tomorrow the provider accepts searches.
// Dates beyond this are clamped, matching the provider's own behavior.
const maxLookaheadDays = 30

// DateWindow bounds the calendar dates a [Watcher] scans.
//
// The zero value means "the full range the provider accepts". Bounds are
// clamped server-side to [tomorrow, tomorrow+30 days]; caller-supplied
// bounds outside that range are clamped with a warning rather than
// rejected, because "tomorrow" shifts daily while the process runs and a
// window that was valid at startup may drift out of range.
type DateWindow struct {
	// Start is the first date to scan. Zero means tomorrow.
	Start time.Time

	// End is the last date to scan, inclusive. Zero means tomorrow+30.
	End time.Time
}

// validate rejects a window whose bounds are contradictory. Clamping can
// move both bounds but never reorders them, so start>end is a configuration
// error rather than something to fix up silently.
func (w DateWindow) validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return nil
	}
	if dayOf(w.Start).After(dayOf(w.End)) {
		return configErrorf(KindInvalidWindow,
			"window start %s is after end %s",
			w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
	}
	return nil
}

// dates produces the ordered sequence of calendar dates to scan, recomputed
// against today. The result is strictly increasing, contiguous, and fully
// contained in [today+1, today+1+maxLookaheadDays].
func (w DateWindow) dates(today time.Time, logger *slog.Logger) []time.Time {
	earliest := dayOf(today).AddDate(0, 0, 1)
	latest := earliest.AddDate(0, 0, maxLookaheadDays)

	start := earliest
	if !w.Start.IsZero() {
		start = dayOf(w.Start)
	}
	end := latest
	if !w.End.IsZero() {
		end = dayOf(w.End)
	}

	if start.Before(earliest) {
		logger.Warn("window start clamped",
			"requested", start.Format(time.DateOnly),
			"clamped_to", earliest.Format(time.DateOnly))
		start = earliest
	}
	if start.After(latest) {
		logger.Warn("window start clamped",
			"requested", start.Format(time.DateOnly),
			"clamped_to", latest.Format(time.DateOnly))
		start = latest
	}
	if end.After(latest) {
		logger.Warn("window end clamped",
			"requested", end.Format(time.DateOnly),
			"clamped_to", latest.Format(time.DateOnly))
		end = latest
	}
	if end.Before(start) {
		// the whole requested window lies before tomorrow
		logger.Warn("window end clamped",
			"requested", end.Format(time.DateOnly),
			"clamped_to", start.Format(time.DateOnly))
		end = start
	}

	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// chunkDates partitions dates into consecutive groups of at most size,
// preserving order. Concatenating the chunks reproduces the input exactly.
func chunkDates(dates []time.Time, size int) [][]time.Time {
	if size <= 0 || len(dates) == 0 {
		return nil
	}
	chunks := make([][]time.Time, 0, (len(dates)+size-1)/size)
	for start := 0; start < len(dates); start += size {
		end := start + size
		if end > len(dates) {
			end = len(dates)
		}
		chunks = append(chunks, dates[start:end])
	}
	return chunks
}

// dayOf truncates a timestamp to its calendar date, preserving location.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
