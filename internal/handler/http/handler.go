package http

import (
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/service"
	"github.com/MKhiriev/go-vault-gate/internal/validators"
)

type Handler struct {
	services  *service.Services
	validator validators.Validator

	apiToken       string
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.ServerConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		validator:      validators.NewVaultValidator(),
		apiToken:       cfg.APIToken,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         logger,
	}
}
