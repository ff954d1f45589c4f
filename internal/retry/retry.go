// Package retry wraps network calls in a bounded exponential-backoff
// policy.
//
// The upstream scheduling API is flaky: connection resets, transient 5xx
// responses, and occasionally malformed bodies. Every call to it (and to
// the notification channel) goes through [Do], which retries with doubling
// delays until a wall-clock ceiling is reached, then lets the final error
// propagate.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxElapsed      = 30 * time.Second
)

// Policy bounds a retry loop: the first delay, and the total wall-clock
// budget across all attempts.
type Policy struct {
	// InitialInterval is the delay before the first retry. Subsequent
	// delays double (with jitter) until the budget runs out.
	InitialInterval time.Duration

	// MaxElapsed is the total wall-clock ceiling. Once exceeded, the last
	// error is returned instead of hanging indefinitely.
	MaxElapsed time.Duration
}

// DefaultPolicy returns the policy used against the scheduling provider:
// 500ms initial delay, 30 second ceiling.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval: defaultInitialInterval,
		MaxElapsed:      defaultMaxElapsed,
	}
}

// normalized fills zero fields with defaults so a partially-specified
// policy behaves sensibly.
func (p Policy) normalized() Policy {
	if p.InitialInterval <= 0 {
		p.InitialInterval = defaultInitialInterval
	}
	if p.MaxElapsed <= 0 {
		p.MaxElapsed = defaultMaxElapsed
	}
	return p
}

// Permanent marks err as non-retriable. [Do] returns it immediately,
// unwrapped, without consuming any of the retry budget.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op under the policy, retrying on any error not marked
// [Permanent]. It returns op's value on the first success, or the final
// error once the wall-clock ceiling is exceeded or ctx is cancelled.
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	p = p.normalized()

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = p.InitialInterval
	expo.Multiplier = 2

	return backoff.Retry(ctx, backoff.Operation[T](op),
		backoff.WithBackOff(expo),
		backoff.WithMaxElapsedTime(p.MaxElapsed),
	)
}
