// Package utils holds small helpers shared by the vault client and backend:
// typed context keys, JSON responses, the resty client, UUIDs, HMAC
// fingerprints and TOTP grant tokens.
package utils

import (
	"context"
)

// contextKey keeps this package's context keys from colliding with string keys
// used elsewhere.
type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey stores the request trace id set by the backend middleware.
var TraceIDCtxKey = contextKey("traceID")

// TOTPGrantCtxKey marks a request that carried a valid TOTP grant.
var TOTPGrantCtxKey = contextKey("totpGrant")

// GetTraceIDFromContext returns the trace id stored in ctx, if any.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}

// HasTOTPGrant reports whether the request context was marked by the grant middleware.
func HasTOTPGrant(ctx context.Context) bool {
	granted, _ := ctx.Value(TOTPGrantCtxKey).(bool)
	return granted
}
