package slotwatch

import (
	"context"
	"strings"
	"time"
)

// dateKeyLayout is the provider's 8-digit calendar date encoding.
const dateKeyLayout = "20060102"

// DateKey formats a date in the provider's 8-digit YYYYMMDD encoding. It is
// the key format used by [Facility.OpenOn] and by provider implementations
// when populating availability maps.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Facility is a location capable of hosting appointments, as reported by a
// provider's facility search. It is transient: produced per query and never
// persisted.
type Facility struct {
	// ID is the provider-assigned facility identifier.
	ID int

	// Name is the facility's display name.
	Name string

	// Street, City, State, and ZIP form the facility's postal address.
	Street string
	City   string
	State  string
	ZIP    string

	// Availability maps [DateKey]-encoded dates to whether the facility
	// reported an open slot on that date.
	Availability map[string]bool
}

// OpenOn reports whether the facility advertised availability on the given
// date.
func (f Facility) OpenOn(date time.Time) bool {
	return f.Availability[DateKey(date)]
}

// FormatLocation returns the formatted address used in notifications and as
// part of the slot identity: "street, city zip".
func (f Facility) FormatLocation() string {
	return f.Street + ", " + f.City + " " + f.ZIP
}

// TimeEntry is a single appointment time reported by a provider's time
// search for one facility and date.
type TimeEntry struct {
	// Start is the appointment's start timestamp.
	Start time.Time

	// Status is the provider's availability status string.
	Status string

	// Color is the provider's display-color field, which it overloads to
	// also mean "full". Empty when the provider omits it.
	Color string
}

// colorFull is the display-color sentinel the provider uses for a slot that
// is nominally available but already full.
const colorFull = "gray"

// Available reports whether the entry represents a bookable slot.
//
// The provider encodes "unavailable" two ways: an explicit status string,
// and the overloaded display-color sentinel. Both conditions must hold for
// the slot to count as free: the status must equal "available"
// (case-insensitively) and the color, when present, must not be the
// sentinel.
func (t TimeEntry) Available() bool {
	if !strings.EqualFold(t.Status, "available") {
		return false
	}
	return !strings.EqualFold(t.Color, colorFull)
}

// BookingRequest carries everything a provider needs to create an
// appointment for a discovered slot.
type BookingRequest struct {
	FacilityID int
	Start      time.Time
	Identity   BookingIdentity
	Adults     int
	Minors     int
	Category   Category
}

// Provider is the boundary toward the external scheduling system.
//
// ListFacilities and ListTimes are idempotent reads and may be retried
// freely. CreateAppointment is NOT idempotent: calling it twice for the
// same slot may double-book, so callers must invoke it at most once per
// discovered slot.
//
// Implementations are expected to handle their own transport-level retries;
// an error returned from any method is treated by the caller as the final
// outcome for that call.
type Provider interface {
	// ListFacilities returns facilities with open slots near the
	// configured location on the given date.
	ListFacilities(ctx context.Context, date time.Time) ([]Facility, error)

	// ListTimes returns the appointment times at a facility on the given
	// date, in provider response order.
	ListTimes(ctx context.Context, date time.Time, facilityID int) ([]TimeEntry, error)

	// CreateAppointment books a slot and returns the provider's
	// confirmation identifier.
	CreateAppointment(ctx context.Context, req BookingRequest) (string, error)
}
