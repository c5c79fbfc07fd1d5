package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTraceIDFromContext(t *testing.T) {
	_, ok := GetTraceIDFromContext(context.Background())
	assert.False(t, ok)

	ctx := context.WithValue(context.Background(), TraceIDCtxKey, "")
	_, ok = GetTraceIDFromContext(ctx)
	assert.False(t, ok, "empty trace id is treated as missing")

	ctx = context.WithValue(context.Background(), TraceIDCtxKey, 42)
	_, ok = GetTraceIDFromContext(ctx)
	assert.False(t, ok, "wrong type is treated as missing")

	ctx = context.WithValue(context.Background(), TraceIDCtxKey, "trace-1")
	id, ok := GetTraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "trace-1", id)
}

func TestHasTOTPGrant(t *testing.T) {
	assert.False(t, HasTOTPGrant(context.Background()))
	assert.True(t, HasTOTPGrant(context.WithValue(context.Background(), TOTPGrantCtxKey, true)))
}

func TestContextKey_String(t *testing.T) {
	assert.Equal(t, "traceID", TraceIDCtxKey.String())
}
