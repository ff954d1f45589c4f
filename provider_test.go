package slotwatch

import (
	"testing"
	"time"
)

func TestTimeEntry_Available(t *testing.T) {
	tests := []struct {
		name   string
		status string
		color  string
		want   bool
	}{
		{name: "available with no color", status: "Available", color: "", want: true},
		{name: "available lowercase", status: "available", color: "", want: true},
		{name: "available with blue color", status: "Available", color: "blue", want: true},
		{name: "available but gray", status: "Available", color: "gray", want: false},
		{name: "available but Gray", status: "available", color: "Gray", want: false},
		{name: "unavailable", status: "Unavailable", color: "", want: false},
		{name: "empty status", status: "", color: "", want: false},
		{name: "unavailable and gray", status: "Unavailable", color: "gray", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := TimeEntry{Status: tt.status, Color: tt.color}
			if got := e.Available(); got != tt.want {
				t.Errorf("Available() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2026, time.September, 5, 14, 30, 0, 0, time.UTC)
	if got := DateKey(d); got != "20260905" {
		t.Errorf("DateKey() = %q, want %q", got, "20260905")
	}
}

func TestFacility_OpenOn(t *testing.T) {
	f := Facility{
		ID: 1370489,
		Availability: map[string]bool{
			"20260905": true,
			"20260906": false,
		},
	}

	if !f.OpenOn(day(2026, time.September, 5)) {
		t.Error("OpenOn() = false for a date flagged open")
	}
	if f.OpenOn(day(2026, time.September, 6)) {
		t.Error("OpenOn() = true for a date flagged closed")
	}
	if f.OpenOn(day(2026, time.September, 7)) {
		t.Error("OpenOn() = true for a date absent from the map")
	}
}

func TestFacility_FormatLocation(t *testing.T) {
	f := Facility{
		Street: "510 GUADALUPE ST",
		City:   "AUSTIN",
		State:  "TX",
		ZIP:    "78701",
	}
	want := "510 GUADALUPE ST, AUSTIN 78701"
	if got := f.FormatLocation(); got != want {
		t.Errorf("FormatLocation() = %q, want %q", got, want)
	}
}

func TestSlotResult_Identity(t *testing.T) {
	r := SlotResult{
		Start:    time.Date(2026, time.September, 5, 10, 30, 0, 0, time.UTC),
		Location: "510 GUADALUPE ST, AUSTIN 78701",
	}
	want := "2026-09-05 10:30 @ 510 GUADALUPE ST, AUSTIN 78701"
	if got := r.Identity(); got != want {
		t.Errorf("Identity() = %q, want %q", got, want)
	}
}
