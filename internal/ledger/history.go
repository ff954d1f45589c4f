package ledger

import (
	"sort"
	"sync"
	"time"
)

// Scan outcomes recorded in the history.
const (
	OutcomeFound = "found"
	OutcomeNone  = "none"
	OutcomeError = "error"
)

// ScanRecord is the most recent outcome for a single scanned date,
// optimized for JSON serialization by the status API.
type ScanRecord struct {
	// Date is the scanned calendar date, formatted YYYY-MM-DD.
	Date string `json:"date"`

	// Outcome is one of [OutcomeFound], [OutcomeNone], [OutcomeError].
	Outcome string `json:"outcome"`

	// Slot is the found slot's start time, empty unless Outcome is found.
	Slot string `json:"slot,omitempty"`

	// Location is the found facility's formatted address.
	Location string `json:"location,omitempty"`

	// Error is the scan failure message, set only when Outcome is error.
	Error *string `json:"error,omitempty"`

	// CheckedAt is when the scan completed.
	CheckedAt time.Time `json:"checked_at"`

	// Cycle is the polling cycle's correlation id.
	Cycle string `json:"cycle"`
}

// History keeps the latest ScanRecord per date. It is safe for concurrent
// access; records are keyed by date, so subsequent cycles replace previous
// outcomes.
type History struct {
	mu      sync.RWMutex
	records map[string]ScanRecord
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{records: make(map[string]ScanRecord)}
}

// Record stores r, replacing any previous record for the same date.
func (h *History) Record(r ScanRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records[r.Date] = r
}

// Snapshot returns a copy of all records ordered by date. Modifying the
// returned slice does not affect the history.
func (h *History) Snapshot() []ScanRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]ScanRecord, 0, len(h.records))
	for _, r := range h.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
