// Package tui is the terminal front end of the vault. Every screen is derived
// from the gate snapshot, so a lock raised by a timer shows up on the next
// frame without any bookkeeping in the view.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services  *service.ClientServices
	bridge    *Bridge
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

// New returns a TUI over services. bridge must be the one whose Notify was
// handed to the services.
func New(services *service.ClientServices, bridge *Bridge, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		bridge:    bridge,
		buildInfo: buildInfo,
		logger:    log,
	}
}

// Run blocks until the user quits or ctx is cancelled. The vault is locked on
// the way out.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services, t.buildInfo)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	t.bridge.attach(program)
	t.services.Reveal.SetOnChange(t.bridge.RevealChanged)
	defer func() {
		t.services.Reveal.SetOnChange(nil)
		t.services.Gate.Lock()
	}()

	_, err := program.Run()
	if err != nil && ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
		t.logger.Info().Msg("terminal closed by shutdown signal")
		return nil
	}
	return err
}
