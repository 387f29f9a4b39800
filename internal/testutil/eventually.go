package testutil

import (
	"testing"
	"time"
)

// Eventually polls fn every interval until it returns true, failing the test
// with msg after timeout.
func Eventually(t testing.TB, timeout, interval time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.After(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for !fn() {
		select {
		case <-deadline:
			if msg == "" {
				msg = "condition not met before timeout"
			}
			t.Fatalf("%s", msg)
		case <-ticker.C:
		}
	}
}
