package slotwatch

import "time"

// SlotResult describes a slot discovered by a scan, as delivered to
// callbacks registered with [WithFoundCallback].
//
// SlotResult is immutable after creation. Booked and ConfirmationID reflect
// the auto-booking outcome: discovery and booking are independent, so a
// result may be delivered with Booked=false even when auto-booking is
// enabled, if the booking attempt failed.
type SlotResult struct {
	// Date is the calendar date that was being scanned when the slot was
	// found. With a non-zero date tolerance this can differ from the day
	// of Start.
	Date time.Time

	// Start is the appointment's start timestamp.
	Start time.Time

	// FacilityID is the provider-assigned id of the hosting facility.
	FacilityID int

	// FacilityName is the hosting facility's display name.
	FacilityName string

	// Location is the facility's formatted address.
	Location string

	// Booked reports whether auto-booking succeeded for this slot.
	Booked bool

	// ConfirmationID is the provider's booking confirmation, set only
	// when Booked is true.
	ConfirmationID string
}

// identityTimeLayout renders slot start times inside identities and
// notification messages.
const identityTimeLayout = "2006-01-02 15:04"

// Identity returns the dedup key for the slot: its start time plus its
// location. Two facilities offering the identical time and formatted
// address are indistinguishable by this key; that is a documented
// limitation, not a bug.
func (r SlotResult) Identity() string {
	return r.Start.Format(identityTimeLayout) + " @ " + r.Location
}
