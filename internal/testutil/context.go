package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds test contexts created without an explicit timeout.
const DefaultTimeout = 5 * time.Second

// deadliner is implemented by *testing.T; benchmarks have no deadline.
type deadliner interface {
	Deadline() (time.Time, bool)
}

// Context returns a context canceled at test cleanup. It expires after
// timeout, or a second before the test binary's own deadline if that is
// sooner.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if d, ok := t.(deadliner); ok {
		if deadline, set := d.Deadline(); set {
			remaining := time.Until(deadline) - time.Second
			if remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return ctx
}
