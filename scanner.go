package slotwatch

import (
	"context"
	"time"
)

// scanner drives the provider for a single date: find the first facility
// with availability, then the first bookable time at that facility.
type scanner struct {
	provider  Provider
	tolerance int // days of drift allowed around the target date
}

// candidateDates returns the dates a facility may satisfy for a scan of
// date: the target date itself, widened by the configured tolerance. With
// tolerance 0 this is exactly [date].
func (s *scanner) candidateDates(date time.Time) []time.Time {
	out := make([]time.Time, 0, 2*s.tolerance+1)
	for off := -s.tolerance; off <= s.tolerance; off++ {
		out = append(out, date.AddDate(0, 0, off))
	}
	return out
}

// scan looks for the first bookable slot on date.
//
// A zero-value SlotResult with found=false means no slot; the date simply
// had no availability, which is the expected common case. Any provider
// error propagates to the caller untouched so the per-date task boundary
// can decide how to log it.
func (s *scanner) scan(ctx context.Context, date time.Time) (SlotResult, bool, error) {
	facilities, err := s.provider.ListFacilities(ctx, date)
	if err != nil {
		return SlotResult{}, false, err
	}

	candidates := s.candidateDates(date)

	// First facility in provider response order with an availability flag
	// set for any candidate date wins.
	var selected *Facility
	for i := range facilities {
		for _, d := range candidates {
			if facilities[i].OpenOn(d) {
				selected = &facilities[i]
				break
			}
		}
		if selected != nil {
			break
		}
	}
	if selected == nil {
		return SlotResult{}, false, nil
	}

	// Query times for each candidate date the facility is open on, in
	// chronological order; the first bookable entry wins.
	for _, d := range candidates {
		if !selected.OpenOn(d) {
			continue
		}
		entries, err := s.provider.ListTimes(ctx, d, selected.ID)
		if err != nil {
			return SlotResult{}, false, err
		}
		for _, entry := range entries {
			if !entry.Available() {
				continue
			}
			return SlotResult{
				Date:         date,
				Start:        entry.Start,
				FacilityID:   selected.ID,
				FacilityName: selected.Name,
				Location:     selected.FormatLocation(),
			}, true, nil
		}
	}

	return SlotResult{}, false, nil
}
