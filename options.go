package slotwatch

import (
	"errors"
	"log/slog"
	"time"
)

// watcherConfig holds mutable state during Watcher construction.
type watcherConfig struct {
	criteria       *SearchCriteria
	window         DateWindow
	provider       Provider
	notifier       Notifier
	interval       time.Duration
	chunkSize      int
	tolerance      int
	autoBook       bool
	statusPort     int
	logger         *slog.Logger
	foundCallbacks []func(SlotResult)
	discordWebhook string
}

// Option is a function that configures a [Watcher] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
type Option func(*watcherConfig) error

// WithCriteria sets the search criteria. Required.
func WithCriteria(c SearchCriteria) Option {
	return func(cfg *watcherConfig) error {
		if !c.location.valid() {
			return configErrorf(KindLocationMissing,
				"criteria must be built with NewCriteria")
		}
		cfg.criteria = &c
		return nil
	}
}

// WithProvider sets the scheduling provider the watcher queries. Required;
// the usps package ships the reference implementation.
func WithProvider(p Provider) Option {
	return func(cfg *watcherConfig) error {
		if p == nil {
			return errors.New("provider cannot be nil")
		}
		cfg.provider = p
		return nil
	}
}

// WithNotifier sets the notification sink for found slots.
//
// If neither WithNotifier nor [WithDiscordWebhook] is used, notifications
// are logged via the watcher's logger.
func WithNotifier(n Notifier) Option {
	return func(cfg *watcherConfig) error {
		if n == nil {
			return errors.New("notifier cannot be nil")
		}
		cfg.notifier = n
		return nil
	}
}

// WithDiscordWebhook delivers notifications to a Discord webhook URL.
// Mutually exclusive with [WithNotifier]; the last one applied wins.
func WithDiscordWebhook(url string) Option {
	return func(cfg *watcherConfig) error {
		if url == "" {
			return errors.New("discord webhook URL cannot be empty")
		}
		cfg.discordWebhook = url
		return nil
	}
}

// WithDateWindow bounds the calendar dates scanned each cycle. The zero
// window (the default) scans the provider's full accepted range. Bounds
// outside [tomorrow, tomorrow+30] are clamped at scan time with a warning.
//
// Returns an error if the window's start falls after its end.
func WithDateWindow(w DateWindow) Option {
	return func(cfg *watcherConfig) error {
		if err := w.validate(); err != nil {
			return err
		}
		cfg.window = w
		return nil
	}
}

// WithPollingInterval sets the pause between full-window scan cycles.
// Defaults to 3 seconds.
//
// Returns an error if the duration is zero or negative.
func WithPollingInterval(d time.Duration) Option {
	return func(cfg *watcherConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithChunkSize sets how many dates are scanned concurrently. Chunks are
// processed sequentially, so this bounds the watcher's outstanding
// requests against the provider. Defaults to 5.
//
// Returns an error if the value is zero or negative.
func WithChunkSize(n int) Option {
	return func(cfg *watcherConfig) error {
		if n <= 0 {
			return errors.New("chunk size must be positive")
		}
		cfg.chunkSize = n
		return nil
	}
}

// WithDateTolerance widens facility selection to dates within the given
// number of days around each scanned date. Defaults to 0, meaning a
// facility must report availability on exactly the scanned date.
//
// Returns an error if the value is negative.
func WithDateTolerance(days int) Option {
	return func(cfg *watcherConfig) error {
		if days < 0 {
			return errors.New("date tolerance cannot be negative")
		}
		cfg.tolerance = days
		return nil
	}
}

// WithAutoBook makes the watcher attempt to book each newly-found slot
// before notifying. Requires a complete booking identity on the criteria
// (see [WithIdentity]); [New] fails otherwise.
//
// Booking and discovery are independent outcomes: if the booking attempt
// fails, the slot is still notified with "book manually" language.
func WithAutoBook() Option {
	return func(cfg *watcherConfig) error {
		cfg.autoBook = true
		return nil
	}
}

// WithStatusPort enables the HTTP status API on the given port. Disabled
// by default.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithStatusPort(port int) Option {
	return func(cfg *watcherConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("status port must be between 1 and 65535")
		}
		cfg.statusPort = port
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the watcher. If not
// specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *watcherConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithFoundCallback registers a function called after each newly-seen slot
// has been notified.
//
// Multiple callbacks may be registered; they execute in registration
// order, synchronously from the dispatch goroutine. Panics within
// callbacks are recovered and logged; they do not crash the watcher.
// Nil callbacks are silently ignored.
func WithFoundCallback(cb func(SlotResult)) Option {
	return func(cfg *watcherConfig) error {
		if cb == nil {
			return nil
		}
		cfg.foundCallbacks = append(cfg.foundCallbacks, cb)
		return nil
	}
}
