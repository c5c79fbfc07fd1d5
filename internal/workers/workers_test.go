// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWorker counts Run calls and remembers the context it got.
type recordingWorker struct {
	runCount int
	ctx      context.Context
}

func (m *recordingWorker) Run(ctx context.Context) {
	m.runCount++
	m.ctx = ctx
}

type countingSweeper struct {
	calls atomic.Int64
}

func (s *countingSweeper) SweepReplayCache() int {
	s.calls.Add(1)
	return 1
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2 := &recordingWorker{}, &recordingWorker{}
	ctx := context.Background()

	ws := &Workers{workers: []Worker{w1, w2}}
	ws.Run(ctx)

	for i, w := range []*recordingWorker{w1, w2} {
		assert.Equal(t, 1, w.runCount, "worker[%d]", i)
		assert.Equal(t, ctx, w.ctx, "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	assert.NotPanics(t, func() { (&Workers{}).Run(context.Background()) })
}

func TestReplayJanitor_SweepsOnEveryTick(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	sweeper := &countingSweeper{}
	janitor := NewReplayJanitor(sweeper, clk, 30*time.Second, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	janitor.Run(ctx)

	clk.Advance(29 * time.Second)
	assert.Never(t, func() bool { return sweeper.calls.Load() > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	clk.Advance(time.Second)
	require.Eventually(t, func() bool { return sweeper.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	clk.Advance(30 * time.Second)
	require.Eventually(t, func() bool { return sweeper.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestReplayJanitor_StopsOnCancel(t *testing.T) {
	clk := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	janitor := NewReplayJanitor(&countingSweeper{}, clk, time.Minute, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	janitor.Run(ctx)
	cancel()

	select {
	case <-janitor.Done():
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestNewReplayJanitor_DefaultInterval(t *testing.T) {
	janitor := NewReplayJanitor(&countingSweeper{}, clock.Real(), 0, logger.Nop())

	assert.Equal(t, DefaultReplayCleanupInterval, janitor.interval)
}
