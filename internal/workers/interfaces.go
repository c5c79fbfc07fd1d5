// Package workers runs the backend's background jobs.
//
// A Worker starts its own goroutine in Run and stops when the context passed
// to Run is cancelled. Workers groups them so the backend starts every job
// with one call.
package workers

import "context"

// Worker is a background job. Run must not block.
type Worker interface {
	Run(ctx context.Context)
}

// ReplaySweeper evicts spent TOTP codes whose replay window has passed.
type ReplaySweeper interface {
	SweepReplayCache() int
}
