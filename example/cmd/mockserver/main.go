// Standalone mock scheduler for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/slotwatch watch -c example/config.yaml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

func main() {
	var (
		mu      sync.Mutex
		opensAt = time.Now().Add(time.Duration(15+rand.Intn(31)) * time.Second)
		openDay = time.Now().AddDate(0, 0, 3).Format("20060102")
	)

	fmt.Println("Mock scheduler starting on :9999")
	fmt.Printf("A slot opens in %s on %s\n", time.Until(opensAt).Round(time.Second), openDay)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

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

		time.Sleep(time.Duration(50+rand.Intn(150)) * time.Millisecond)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"facilityDetails": []map[string]any{{
				"fdbId": 1370489,
				"name":  "AUSTIN DOWNTOWN STATION",
				"address": map[string]string{
					"addressLineOne": "510 GUADALUPE ST",
					"city":           "AUSTIN",
					"state":          "TX",
					"zip5":           "78701",
				},
				"date": []map[string]any{
					{"date": req.Date, "status": isOpen(req.Date)},
				},
			}},
		})
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
			{"startDateTime": day.Add(9 * time.Hour).Format("2006-01-02T15:04:05"), "status": "Unavailable", "color": "gray"},
		}
		if isOpen(req.Date) {
			entries = append(entries, map[string]string{
				"startDateTime": day.Add(10*time.Hour + 30*time.Minute).Format("2006-01-02T15:04:05"),
				"status":        "Available",
				"color":         "blue",
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"appointmentTimeDetailExtended": entries})
	})

	http.HandleFunc("/createAppointment", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"confirmationNumber": "MOCK-CONF-12345"})
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
