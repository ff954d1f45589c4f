package slotwatch

import "fmt"

// ConfigErrorKind identifies the class of configuration error that caused
// construction to fail.
//
// Kinds allow callers (and tests) to distinguish between, say, a missing
// location and a contradictory one without string matching on messages.
type ConfigErrorKind string

const (
	// KindLocationMissing indicates that neither a postal code nor a
	// complete city/state pair was provided.
	KindLocationMissing ConfigErrorKind = "location_missing"

	// KindLocationConflict indicates that both a postal code and a
	// city/state pair were provided. Exactly one form is valid.
	KindLocationConflict ConfigErrorKind = "location_conflict"

	// KindIdentityMissing indicates that auto-booking was enabled without
	// a complete booking identity (name, email, 10-digit phone).
	KindIdentityMissing ConfigErrorKind = "identity_missing"

	// KindInvalidRadius indicates a non-positive search radius.
	KindInvalidRadius ConfigErrorKind = "invalid_radius"

	// KindInvalidParty indicates an invalid party composition, such as
	// zero adults or a negative minor count.
	KindInvalidParty ConfigErrorKind = "invalid_party"

	// KindInvalidCategory indicates an unsupported appointment category.
	KindInvalidCategory ConfigErrorKind = "invalid_category"

	// KindInvalidWindow indicates a date window whose start falls after
	// its end.
	KindInvalidWindow ConfigErrorKind = "invalid_window"
)

// ConfigError is returned when a [Watcher] or [SearchCriteria] cannot be
// constructed from the supplied configuration.
//
// ConfigError is fatal: it is surfaced immediately at construction time and
// never retried. Use [errors.As] to recover the error and inspect its Kind.
type ConfigError struct {
	// Kind classifies the configuration failure.
	Kind ConfigErrorKind

	msg string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration (%s): %s", e.Kind, e.msg)
}

// configErrorf builds a *ConfigError with a formatted message.
func configErrorf(kind ConfigErrorKind, format string, args ...any) *ConfigError {
	return &ConfigError{Kind: kind, msg: fmt.Sprintf(format, args...)}
}
