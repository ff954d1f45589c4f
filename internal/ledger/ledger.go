// Package ledger holds the watcher's in-process state: the dedup ledger of
// already-notified slots, and the per-date scan history served by the
// status API.
//
// Both structures are memory-only and reset on restart. A restart can
// therefore reproduce a notification for an already-found slot; that is a
// documented limitation, accepted because the process lifetime is bounded
// by a single date window.
package ledger

import "sync"

// Ledger is the set of slot identities that have already produced a
// successful notification.
//
// The ledger is never pruned: slot volume is small and the process
// lifetime is bounded, so growth is acceptable. All methods are safe for
// concurrent use, though the watcher serializes check-and-mark through a
// single dispatch goroutine so that at most one observation of a given
// identity passes [Ledger.ShouldNotify].
type Ledger struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// New creates an empty Ledger.
func New() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// ShouldNotify reports whether identity has not yet been notified. It is a
// pure read; it never mutates the set.
func (l *Ledger) ShouldNotify(identity string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.seen[identity]
	return !ok
}

// MarkNotified records identity as notified. Call this only after the
// notifier confirmed dispatch, so a failed notification can be retried on
// a later cycle.
func (l *Ledger) MarkNotified(identity string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[identity] = struct{}{}
}

// Size returns the number of recorded identities.
func (l *Ledger) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.seen)
}
