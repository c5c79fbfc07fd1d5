// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
)

// DefaultReplayCleanupInterval is used when no interval is configured.
const DefaultReplayCleanupInterval = 30 * time.Second

// ReplayJanitor periodically evicts spent TOTP codes so the replay cache
// does not grow without bound.
type ReplayJanitor struct {
	sweeper  ReplaySweeper
	clock    clock.Clock
	interval time.Duration

	done chan struct{}

	logger *logger.Logger
}

func NewReplayJanitor(sweeper ReplaySweeper, clk clock.Clock, interval time.Duration, logger *logger.Logger) *ReplayJanitor {
	if interval <= 0 {
		interval = DefaultReplayCleanupInterval
	}
	return &ReplayJanitor{
		sweeper:  sweeper,
		clock:    clk,
		interval: interval,
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Run starts the sweep loop. Done is closed once the loop has exited.
func (j *ReplayJanitor) Run(ctx context.Context) {
	ticker := j.clock.NewTicker(j.interval)
	j.logger.Info().Dur("interval", j.interval).Msg("replay janitor started")

	go func() {
		defer close(j.done)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				j.logger.Info().Msg("replay janitor stopped")
				return
			case <-ticker.C:
				if evicted := j.sweeper.SweepReplayCache(); evicted > 0 {
					j.logger.Debug().Int("evicted", evicted).Msg("spent totp codes evicted")
				}
			}
		}
	}()
}

func (j *ReplayJanitor) Done() <-chan struct{} {
	return j.done
}
