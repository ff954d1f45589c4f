package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/slotwatch"
	"github.com/jpalmerr/slotwatch/usps"
)

func main() {
	// start mock scheduler (see mock_server.go)
	go StartMockSchedulerServer(":9999")
	time.Sleep(100 * time.Millisecond)

	criteria, err := slotwatch.NewCriteria(
		slotwatch.PostalCode("78701"),
		slotwatch.WithRadius(25),
	)
	if err != nil {
		slog.Error("failed to create criteria", "error", err)
		os.Exit(1)
	}

	// the real client, pointed at the mock server
	provider := usps.New(criteria, usps.WithBaseURL("http://localhost:9999"))

	watcher, err := slotwatch.New(
		slotwatch.WithCriteria(criteria),
		slotwatch.WithProvider(provider),
		slotwatch.WithPollingInterval(3*time.Second),
		slotwatch.WithStatusPort(8080),
		slotwatch.WithFoundCallback(func(r slotwatch.SlotResult) {
			fmt.Printf("\n  >>> slot found: %s at %s <<<\n\n", r.Start.Format("Mon Jan 2 15:04"), r.FacilityName)
		}),
	)
	if err != nil {
		slog.Error("failed to create watcher", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Slotwatch Demo                                      ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Polling a mock scheduler every 3 seconds.           ║")
	fmt.Println("  ║   A slot opens up 15-45 seconds in - watch the logs.  ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Status API: http://localhost:8080/api/status        ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Start(ctx); err != nil {
		slog.Error("watcher error", "error", err)
		os.Exit(1)
	}
}
