package server

import "context"

// Server is the lifecycle of the backend transport.
type Server interface {
	// RunServer serves until ctx is cancelled, then shuts down gracefully.
	RunServer(ctx context.Context) error

	// Shutdown stops the server and frees associated resources.
	Shutdown()
}
