package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jpalmerr/slotwatch/internal/ledger"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the watcher's internal state over HTTP:
//   - GET /api/status: latest per-date scan outcomes + notified slot count
//
// The server is optional; the watcher only starts one when a status port
// is configured. It shuts down gracefully on context cancellation.
type Server struct {
	history    *ledger.History
	notified   *ledger.Ledger
	port       int
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a status [Server]. It is not started until
// [Server.Start] is called.
func NewServer(history *ledger.History, notified *ledger.Ledger, port int, logger *slog.Logger) *Server {
	return &Server{
		history:  history,
		notified: notified,
		port:     port,
		logger:   logger,
	}
}

// statusResponse is the /api/status payload.
type statusResponse struct {
	NotifiedCount int                 `json:"notified_count"`
	Scans         []ledger.ScanRecord `json:"scans"`
}

// Start begins serving in a background goroutine.
//
// Start is non-blocking and returns after the listener is bound, so a port
// conflict surfaces synchronously. When ctx is cancelled the server shuts
// down gracefully with a 5-second timeout.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)

	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: mux,
		// BaseContext derives request contexts from the server context so
		// in-flight handlers observe shutdown.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("status server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleStatus returns the scan history and ledger size as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := statusResponse{
		NotifiedCount: s.notified.Size(),
		Scans:         s.history.Snapshot(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode status response", "error", err)
	}
}
