// Package slotwatch continuously polls a third-party scheduling provider
// to detect when an appointment slot opens within a date window and a
// geographic area, and notifies (optionally books) the first time each
// distinct slot is observed.
//
// Slotwatch is designed as an SDK-first library: applications configure a
// Watcher programmatically and drive it with a context, or use the
// standalone slotwatch binary with a YAML configuration file. Types are
// immutable after construction and configured via the functional options
// pattern.
//
// # Quick Start
//
// Build criteria, bind a provider, and start the watcher with graceful
// shutdown:
//
//	criteria, _ := slotwatch.NewCriteria(slotwatch.PostalCode("78701"))
//	w, _ := slotwatch.New(
//	    slotwatch.WithCriteria(criteria),
//	    slotwatch.WithProvider(usps.New(criteria)),
//	    slotwatch.WithDiscordWebhook(os.Getenv("DISCORD_WEBHOOK")),
//	)
//
//	// Set up graceful shutdown on SIGINT/SIGTERM
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	w.Start(ctx) // blocks until context is cancelled
//
// # How scanning works
//
// Every cycle the watcher recomputes its date window against today
// (clamped to tomorrow through tomorrow+30), partitions the dates into
// chunks of a fixed size, and scans each chunk's dates concurrently.
// Chunks run strictly in window order; the chunk size bounds the number of
// outstanding provider requests, which exists to avoid rate-limiting, not
// to bound local CPU. For each date the scanner takes the first facility
// reporting availability and the first bookable time entry at it.
//
// A found slot is keyed by its start time plus facility address; the
// in-memory dedup ledger guarantees each key is notified at most once per
// process lifetime. The ledger is only updated after the notifier confirms
// dispatch, so a failed notification is re-attempted on a later cycle.
//
// # Architecture
//
// Slotwatch consists of the root package plus:
//
//   - usps: the reference Provider implementation against the USPS
//     retail appointment scheduler
//   - config: YAML configuration parsing for the standalone binary
//   - internal/retry: bounded exponential-backoff combinator
//   - internal/ledger: dedup ledger and scan history
//   - internal/notify: Discord webhook and log notifiers
//   - internal/server: optional HTTP status API
//
// The internal packages are not part of the public API and may change
// without notice.
package slotwatch
