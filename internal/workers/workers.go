package workers

import (
	"context"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the backend jobs from the running services.
func NewWorkers(services *service.Services, cfg config.ServerConfig, clk clock.Clock, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewReplayJanitor(services.TOTPService, clk, cfg.ReplayCleanupInterval, logger),
	}}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
