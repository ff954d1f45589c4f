// Package server provides the optional HTTP status API for a running
// watcher.
//
// It serves a single JSON endpoint, "/api/status", returning the most
// recent scan outcome for every date in the window plus the number of
// slots notified so far. The server supports graceful shutdown via context
// cancellation, with a 5-second timeout for in-flight requests.
//
// Users of the slotwatch library should not need to interact with this
// package directly; the watcher starts it when a status port is
// configured.
package server
