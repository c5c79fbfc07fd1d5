// Package server runs the vault backend's HTTP listener and shuts it down
// gracefully when the run context is cancelled.
package server
