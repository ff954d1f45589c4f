// Package notify contains the built-in notification sinks: a Discord
// webhook and an slog fallback.
//
// Both types satisfy the watcher's Notifier interface structurally; this
// package deliberately does not import the root package so the root can
// construct them from options.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jpalmerr/slotwatch/internal/retry"
)

const (
	webhookTimeout      = 10 * time.Second
	maxResponseBodySize = 1 << 20 // 1MB
)

// Discord delivers messages to a Discord webhook URL.
//
// Dispatch is retried under its own bounded-backoff budget, independent of
// the provider's, so a flaky notification channel does not corrupt dedup
// state: the watcher only records a slot as notified after Notify returns
// nil.
type Discord struct {
	hc         *http.Client
	webhookURL string
	policy     retry.Policy
}

// NewDiscord creates a Discord webhook notifier.
func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		hc:         &http.Client{Timeout: webhookTimeout},
		webhookURL: webhookURL,
		policy:     retry.DefaultPolicy(),
	}
}

// webhookPayload is Discord's minimal message shape.
type webhookPayload struct {
	Content string `json:"content"`
}

// Notify posts the message to the webhook, retrying transient failures.
func (d *Discord) Notify(ctx context.Context, message string) error {
	body, err := json.Marshal(webhookPayload{Content: message})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	_, err = retry.Do(ctx, d.policy, func() (struct{}, error) {
		return struct{}{}, d.post(ctx, body)
	})
	return err
}

// post performs a single webhook delivery attempt.
func (d *Discord) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return retry.Permanent(fmt.Errorf("failed to create webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.hc.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Logger is the fallback notifier used when no delivery channel is
// configured: it logs the message at Info level and always succeeds.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger notifier.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

// Notify logs the message.
func (l *Logger) Notify(_ context.Context, message string) error {
	l.logger.Info("appointment notification", "message", message)
	return nil
}
