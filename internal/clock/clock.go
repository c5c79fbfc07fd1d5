// Package clock abstracts the wall clock so that the idle lock, reveal
// windows and background workers can be driven deterministically in tests.
//
// Production code uses Real; tests use Fake and move time with Advance.
package clock

import "time"

// Clock is the subset of the time package used by the vault.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f on its own goroutine (Real) or synchronously during
	// Advance (Fake) once d has elapsed.
	AfterFunc(d time.Duration, f func()) *Timer
	NewTicker(d time.Duration) *Ticker
}

// Timer is a cancelable pending call created by AfterFunc.
type Timer struct {
	stopFunc func() bool
}

// Stop cancels the pending call. It reports false when the call already ran
// or was stopped before.
func (t *Timer) Stop() bool { return t.stopFunc() }

// Ticker delivers ticks on C until stopped. C has capacity 1; ticks are
// dropped while the consumer is behind.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

func (t *Ticker) Stop() { t.stopFunc() }
