package main

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// mockFacility is one post office the mock scheduler knows about.
type mockFacility struct {
	id     int
	name   string
	street string
	city   string
	state  string
	zip    string
}

var mockFacilities = []mockFacility{
	{id: 1370489, name: "AUSTIN DOWNTOWN STATION", street: "510 GUADALUPE ST", city: "AUSTIN", state: "TX", zip: "78701"},
	{id: 1370512, name: "SOUTH CONGRESS STATION", street: "3903 S CONGRESS AVE", city: "AUSTIN", state: "TX", zip: "78704"},
}

// StartMockSchedulerServer runs a fake appointment scheduler with the same
// endpoints and payload shapes as the real one. Availability opens 15-45
// seconds after start at one facility, so a running watcher eventually
// finds a slot.
// Call this in a goroutine before starting the watcher.
func StartMockSchedulerServer(addr string) {
	var (
		mu      sync.Mutex
		opensAt = time.Now().Add(time.Duration(15+rand.Intn(31)) * time.Second)
		openDay = time.Now().AddDate(0, 0, 3).Format("20060102")
	)
	slog.Info("mock scheduler started",
		"addr", addr,
		"slot_opens_in", time.Until(opensAt).Round(time.Second),
		"slot_date", openDay)

	isOpen := func(date string) bool {
		mu.Lock()
		defer mu.Unlock()
		return date == openDay && time.Now().After(opensAt)
	}

	http.HandleFunc("/facilityScheduleSearch", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Date string `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// simulate small latency variance
		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		details := make([]map[string]any, 0, len(mockFacilities))
		for i, f := range mockFacilities {
			// only the first facility ever opens up
			status := i == 0 && isOpen(req.Date)
			details = append(details, map[string]any{
				"fdbId": f.id,
				"name":  f.name,
				"address": map[string]string{
					"addressLineOne": f.street,
					"city":           f.city,
					"state":          f.state,
					"zip5":           f.zip,
				},
				"date": []map[string]any{
					{"date": req.Date, "status": status},
				},
			})
		}
		writeJSON(w, map[string]any{"facilityDetails": details})
	})

	http.HandleFunc("/appointmentTimeSearch", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Date string `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		day, err := time.ParseInLocation("20060102", req.Date, time.Local)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		entries := []map[string]string{
			// the 9:00 slot is taken; 10:30 is the one that opens
			{"startDateTime": day.Add(9 * time.Hour).Format("2006-01-02T15:04:05"), "status": "Unavailable", "color": "gray"},
		}
		if isOpen(req.Date) {
			entries = append(entries, map[string]string{
				"startDateTime": day.Add(10*time.Hour + 30*time.Minute).Format("2006-01-02T15:04:05"),
				"status":        "Available",
				"color":         "blue",
			})
		}
		writeJSON(w, map[string]any{"appointmentTimeDetailExtended": entries})
	})

	http.HandleFunc("/createAppointment", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"confirmationNumber": "MOCK-CONF-12345"})
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock scheduler error", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
