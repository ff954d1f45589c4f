package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fastPolicy keeps tests quick while still exercising the backoff loop.
func fastPolicy() Policy {
	return Policy{InitialInterval: time.Millisecond, MaxElapsed: 2 * time.Second}
}

func TestDo_SucceedsFirstTry(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastPolicy(), func() (string, error) {
		attempts++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Do() = %q, want %q", got, "ok")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	attempts := 0
	got, err := Do(context.Background(), fastPolicy(), func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Do() = %d, want 42", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	sentinel := errors.New("bad request")
	attempts := 0

	_, err := Do(context.Background(), fastPolicy(), func() (struct{}, error) {
		attempts++
		return struct{}{}, Permanent(sentinel)
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("Do() error = %v, want %v", err, sentinel)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retries on permanent errors)", attempts)
	}
}

func TestDo_CeilingSurfacesLastError(t *testing.T) {
	sentinel := errors.New("still down")
	p := Policy{InitialInterval: time.Millisecond, MaxElapsed: 50 * time.Millisecond}

	start := time.Now()
	_, err := Do(context.Background(), p, func() (struct{}, error) {
		return struct{}{}, sentinel
	})
	elapsed := time.Since(start)

	if !errors.Is(err, sentinel) {
		t.Errorf("Do() error = %v, want the operation's last error", err)
	}
	if elapsed > 2*time.Second {
		t.Errorf("Do() ran for %s, want it bounded near the 50ms ceiling", elapsed)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, fastPolicy(), func() (struct{}, error) {
		return struct{}{}, errors.New("transient")
	})
	if err == nil {
		t.Fatal("Do() on cancelled context succeeded")
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if p.InitialInterval != 500*time.Millisecond {
		t.Errorf("InitialInterval = %s, want 500ms", p.InitialInterval)
	}
	if p.MaxElapsed != 30*time.Second {
		t.Errorf("MaxElapsed = %s, want 30s", p.MaxElapsed)
	}
}

func TestPolicy_NormalizedFillsZeroFields(t *testing.T) {
	p := Policy{}.normalized()
	if p.InitialInterval != 500*time.Millisecond || p.MaxElapsed != 30*time.Second {
		t.Errorf("normalized() = %+v, want defaults filled in", p)
	}
}
