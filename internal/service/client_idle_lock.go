package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
)

// IdleLockTimer calls onIdle once no activity was reported for timeout.
//
// There is at most one pending timer. Every Touch replaces it and bumps a
// generation, so a replaced timer that already started firing does nothing.
type IdleLockTimer struct {
	mu sync.Mutex

	clock   clock.Clock
	timeout time.Duration
	onIdle  func()

	timer        *clock.Timer
	generation   uint64
	running      bool
	lastActivity time.Time
}

func NewIdleLockTimer(clk clock.Clock, timeout time.Duration, onIdle func()) *IdleLockTimer {
	return &IdleLockTimer{
		clock:   clk,
		timeout: timeout,
		onIdle:  onIdle,
	}
}

// Start arms the timer from now.
func (t *IdleLockTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = true
	t.rearmLocked()
}

// Touch records activity and rearms the timer. It reports false when the
// timer is not running.
func (t *IdleLockTimer) Touch() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return false
	}
	t.rearmLocked()
	return true
}

// Stop cancels the pending timer. Safe to call when not running.
func (t *IdleLockTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.generation++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Running reports whether a timer is armed.
func (t *IdleLockTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// LastActivity returns the time of the last Start or Touch.
func (t *IdleLockTimer) LastActivity() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActivity
}

// Deadline returns when the timer fires if nothing else happens.
func (t *IdleLockTimer) Deadline() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return time.Time{}, false
	}
	return t.lastActivity.Add(t.timeout), true
}

func (t *IdleLockTimer) rearmLocked() {
	if t.timer != nil {
		t.timer.Stop()
	}

	t.generation++
	generation := t.generation
	t.lastActivity = t.clock.Now()
	t.timer = t.clock.AfterFunc(t.timeout, func() { t.fire(generation) })
}

func (t *IdleLockTimer) fire(generation uint64) {
	t.mu.Lock()
	if !t.running || generation != t.generation {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.timer = nil
	t.mu.Unlock()

	t.onIdle()
}
