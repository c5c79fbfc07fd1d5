package service

import (
	"github.com/MKhiriev/go-vault-gate/internal/adapter"
	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/crypto"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
)

type ClientServices struct {
	Gate    AuthGate
	Secrets SecretStore
	Reveal  RevealManager
}

func NewClientServices(
	serverAdapter adapter.ServerAdapter,
	cipher crypto.CipherPrimitive,
	clipboard Clipboard,
	cfg config.ClientVault,
	clk clock.Clock,
	log *logger.Logger,
	notify func(models.Notice),
) *ClientServices {
	gate := NewAuthGate(serverAdapter, NewMasterKeyVerifier(cipher), clk, cfg.IdleTimeout, notify, log)

	return &ClientServices{
		Gate:    gate,
		Secrets: NewSecretStore(gate, serverAdapter, cipher, log),
		Reveal:  NewRevealManager(gate, cipher, clipboard, clk, cfg.RevealWindow, log),
	}
}
