package slotwatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/slotwatch/internal/ledger"
	"github.com/jpalmerr/slotwatch/internal/notify"
	"github.com/jpalmerr/slotwatch/internal/server"
)

const (
	defaultPollingInterval = 3 * time.Second
	defaultChunkSize       = 5

	// manualBookingURL is where a human can book a discovered slot when
	// auto-booking is off or failed.
	manualBookingURL = "https://tools.usps.com/rcas.htm"
)

// Notifier delivers a human-readable message for a found or booked slot.
//
// Implementations should carry their own retry policy: the watcher treats
// a returned error as a failed dispatch and does NOT record the slot in
// the dedup ledger, so a later cycle will re-attempt the notification
// (at-least-once bias).
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Watcher is the orchestrator: it owns the date window, fans per-date
// scans out in bounded-concurrency chunks, deduplicates discoveries, and
// dispatches notifications. It is created once via [New] from validated
// configuration and lives for the process lifetime.
//
// The typical lifecycle is:
//
//	w, err := slotwatch.New(
//	    slotwatch.WithCriteria(criteria),
//	    slotwatch.WithProvider(usps.New(criteria)),
//	)
//	if err != nil {
//	    slog.Error("failed to create watcher", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	w.Start(ctx) // blocks until context cancelled
//
// The loop has no success terminus: absence of availability is the
// expected common case, not an error. Cancel the context to shut down;
// cancellation is observed at cycle, chunk, and sleep boundaries.
type Watcher struct {
	criteria       SearchCriteria
	window         DateWindow
	provider       Provider
	notifier       Notifier
	interval       time.Duration
	chunkSize      int
	autoBook       bool
	statusPort     int
	logger         *slog.Logger
	foundCallbacks []func(SlotResult)

	scanner  *scanner
	notified *ledger.Ledger
	history  *ledger.History

	// bookings holds successful booking outcomes whose notification has
	// not yet been delivered, keyed by slot identity. Booking is not
	// idempotent, so a failed notification must re-attempt only the
	// notification and reuse the confirmation recorded here. Accessed
	// only from dispatch, which runs on the cycle goroutine.
	bookings map[string]SlotResult
}

// New creates a [Watcher] from the given options.
//
// [WithCriteria] and [WithProvider] are required. Other options have
// defaults: 3 second polling interval, chunks of 5 dates, zero date
// tolerance, full date window, log-only notifier.
//
// Returns a [ConfigError] if the configuration is invalid, notably when
// [WithAutoBook] is set without a complete booking identity on the
// criteria. Validation happens here, before any network call.
func New(opts ...Option) (*Watcher, error) {
	cfg := &watcherConfig{
		interval:  defaultPollingInterval,
		chunkSize: defaultChunkSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.criteria == nil {
		return nil, errors.New("search criteria are required")
	}
	if cfg.provider == nil {
		return nil, errors.New("a scheduling provider is required")
	}
	if cfg.autoBook {
		if _, ok := cfg.criteria.Identity(); !ok {
			return nil, configErrorf(KindIdentityMissing,
				"auto-booking requires a booking identity on the criteria")
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	notifier := cfg.notifier
	if notifier == nil {
		if cfg.discordWebhook != "" {
			notifier = notify.NewDiscord(cfg.discordWebhook)
		} else {
			notifier = notify.NewLogger(logger)
		}
	}

	return &Watcher{
		criteria:       *cfg.criteria,
		window:         cfg.window,
		provider:       cfg.provider,
		notifier:       notifier,
		interval:       cfg.interval,
		chunkSize:      cfg.chunkSize,
		autoBook:       cfg.autoBook,
		statusPort:     cfg.statusPort,
		logger:         logger,
		foundCallbacks: cfg.foundCallbacks,
		scanner:        &scanner{provider: cfg.provider, tolerance: cfg.tolerance},
		notified:       ledger.New(),
		history:        ledger.NewHistory(),
		bookings:       make(map[string]SlotResult),
	}, nil
}

// Start runs the polling loop until ctx is cancelled.
//
// Each cycle recomputes the date window against today (the window shifts
// as the process runs for days), partitions it into chunks, scans each
// chunk's dates concurrently, and dispatches any discoveries. Between
// cycles the watcher sleeps for the configured interval.
//
// Returns nil on cancellation, or an error if the status server (when
// enabled) fails to start.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("slotwatch starting",
		"search", w.criteria.describe(),
		"interval", w.interval.String(),
		"chunk_size", w.chunkSize,
		"auto_book", w.autoBook,
	)

	if ctx.Err() != nil {
		return nil
	}

	if w.statusPort != 0 {
		srv := server.NewServer(w.history, w.notified, w.statusPort, w.logger)
		if err := srv.Start(ctx); err != nil {
			return fmt.Errorf("failed to start status server: %w", err)
		}
		w.logger.Info("status API available", "url", fmt.Sprintf("http://localhost:%d/api/status", w.statusPort))
	}

	for {
		w.runCycle(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info("slotwatch stopped")
			return nil
		case <-time.After(w.interval):
		}
	}
}

// dateOutcome is one date's scan result within a chunk.
type dateOutcome struct {
	date   time.Time
	result SlotResult
	found  bool
	err    error
}

// runCycle scans the full window once: chunks are processed strictly in
// window order, dates within a chunk concurrently.
func (w *Watcher) runCycle(ctx context.Context) {
	cycleID := uuid.NewString()
	dates := w.window.dates(time.Now(), w.logger)

	for _, chunk := range chunkDates(dates, w.chunkSize) {
		if ctx.Err() != nil {
			return
		}
		for _, outcome := range w.scanChunk(ctx, chunk) {
			w.dispatch(ctx, outcome, cycleID)
		}
	}
}

// scanChunk scans every date in the chunk concurrently and waits for all
// of them. One date's failure never aborts its siblings; each outcome is
// reported individually.
func (w *Watcher) scanChunk(ctx context.Context, chunk []time.Time) []dateOutcome {
	outcomes := make([]dateOutcome, len(chunk))

	var wg sync.WaitGroup
	for i, date := range chunk {
		wg.Add(1)
		go func(i int, date time.Time) {
			defer wg.Done()
			result, found, err := w.scanner.scan(ctx, date)
			outcomes[i] = dateOutcome{date: date, result: result, found: found, err: err}
		}(i, date)
	}
	wg.Wait()

	return outcomes
}

// dispatch handles a single date's outcome. It runs on the cycle goroutine
// only, which serializes every ledger check-and-mark: even if two dates in
// the same chunk surface identical slot identities, at most one of them
// passes ShouldNotify.
func (w *Watcher) dispatch(ctx context.Context, o dateOutcome, cycleID string) {
	dateStr := o.date.Format(time.DateOnly)

	if o.err != nil {
		// a scan failure is "no result for this date", not a loop-fatal
		// condition
		w.logger.Warn("scan failed",
			"date", dateStr,
			"location", w.criteria.Location().String(),
			"cycle", cycleID,
			"error", o.err.Error(),
		)
		msg := o.err.Error()
		w.history.Record(ledger.ScanRecord{
			Date: dateStr, Outcome: ledger.OutcomeError, Error: &msg,
			CheckedAt: time.Now(), Cycle: cycleID,
		})
		return
	}

	if !o.found {
		w.logger.Warn("no appointments found",
			"search", w.criteria.describe(),
			"date", dateStr,
			"cycle", cycleID,
		)
		w.history.Record(ledger.ScanRecord{
			Date: dateStr, Outcome: ledger.OutcomeNone,
			CheckedAt: time.Now(), Cycle: cycleID,
		})
		return
	}

	result := o.result
	w.history.Record(ledger.ScanRecord{
		Date: dateStr, Outcome: ledger.OutcomeFound,
		Slot: result.Start.Format(identityTimeLayout), Location: result.Location,
		CheckedAt: time.Now(), Cycle: cycleID,
	})

	identity := result.Identity()
	if !w.notified.ShouldNotify(identity) {
		w.logger.Debug("slot already notified, skipping",
			"slot", identity,
			"cycle", cycleID,
		)
		return
	}

	if w.autoBook {
		if booked, ok := w.bookings[identity]; ok {
			// already booked on an earlier cycle whose notification
			// failed; reuse the confirmation rather than booking twice
			result = booked
		} else {
			result = w.tryBook(ctx, result, cycleID)
			if result.Booked {
				w.bookings[identity] = result
			}
		}
	}

	message := w.composeMessage(result)
	if err := w.notifier.Notify(ctx, message); err != nil {
		// ledger deliberately not updated: a later cycle re-attempts
		// the notification (the booking outcome, if any, is kept above)
		w.logger.Warn("notification failed",
			"slot", identity,
			"cycle", cycleID,
			"error", err.Error(),
		)
		return
	}
	w.notified.MarkNotified(identity)
	delete(w.bookings, identity)

	w.logger.Info("slot notified",
		"slot", identity,
		"facility", result.FacilityName,
		"booked", result.Booked,
		"cycle", cycleID,
	)

	for _, cb := range w.foundCallbacks {
		invokeCallbackSafe(cb, result, w.logger)
	}
}

// tryBook attempts to book the slot. Discovery and booking are independent
// outcomes: on failure the original result is returned unchanged and the
// caller still notifies with "book manually" language.
func (w *Watcher) tryBook(ctx context.Context, result SlotResult, cycleID string) SlotResult {
	identity, _ := w.criteria.Identity()
	confirmation, err := w.provider.CreateAppointment(ctx, BookingRequest{
		FacilityID: result.FacilityID,
		Start:      result.Start,
		Identity:   identity,
		Adults:     w.criteria.Adults(),
		Minors:     w.criteria.Minors(),
		Category:   w.criteria.Category(),
	})
	if err != nil {
		w.logger.Warn("booking failed",
			"slot", result.Identity(),
			"facility", result.FacilityName,
			"cycle", cycleID,
			"error", err.Error(),
		)
		return result
	}

	result.Booked = true
	result.ConfirmationID = confirmation
	return result
}

// composeMessage builds the human-readable notification text.
func (w *Watcher) composeMessage(r SlotResult) string {
	when := r.Start.Format(identityTimeLayout)
	if r.Booked {
		return fmt.Sprintf("Booked %s appointment at %s on %s (confirmation %s)",
			w.criteria.Category(), r.Location, when, r.ConfirmationID)
	}
	return fmt.Sprintf("Found %s appointment at %s on %s; book it here: %s",
		w.criteria.Category(), r.Location, when, manualBookingURL)
}

// invokeCallbackSafe calls a found callback with panic recovery. Panics
// are logged but do not propagate.
func invokeCallbackSafe(cb func(SlotResult), result SlotResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("found callback panicked",
				"panic", r,
				"slot", result.Identity(),
			)
		}
	}()
	cb(result)
}
