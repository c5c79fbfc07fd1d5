package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/crypto"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/internal/tui"
	"github.com/MKhiriev/go-vault-gate/internal/utils"
	"github.com/MKhiriev/go-vault-gate/models"
)

type App struct {
	services *service.ClientServices
	ui       *tui.TUI
	logger   *logger.Logger
}

// NewApp wires the backend adapter, the client services and the terminal UI.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	if !utils.ClipboardAvailable() {
		log.Warn().Msg("no clipboard backend found, copy will fail")
	}

	bridge := tui.NewBridge()
	services := service.NewClientServices(
		serverAdapter,
		crypto.NewCipherPrimitive(),
		utils.NewSystemClipboard(),
		cfg.Vault,
		clock.Real(),
		log,
		bridge.Notify,
	)

	return &App{
		services: services,
		ui:       tui.New(services, bridge, buildInfo, log),
		logger:   log,
	}, nil
}

// Run blocks until the user quits or ctx is cancelled. The session key and
// any clipboard content are gone by the time Run returns.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Msg("client started")
	defer a.services.Reveal.Clear()

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}

	a.logger.Info().Msg("client stopped")
	return nil
}
