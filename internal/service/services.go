package service

import (
	"fmt"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/store"
	"github.com/MKhiriev/go-vault-gate/internal/utils"
	"github.com/MKhiriev/go-vault-gate/models"
)

// Services groups the backend services used by the handlers and workers.
type Services struct {
	VaultService   VaultService
	ProjectService ProjectService
	TOTPService    TOTPService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.ServerConfig, buildInfo models.AppBuildInfo, clk clock.Clock, logger *logger.Logger) (*Services, error) {
	ids := utils.NewUUIDGenerator()

	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	vaultService := NewVaultValidationService().Wrap(
		NewVaultService(storages.SecretRepository, ids, clk, logger),
	)
	projectService := NewProjectValidationService().Wrap(
		NewProjectService(storages.ProjectRepository, ids, clk, logger),
	)

	return &Services{
		VaultService:   vaultService,
		ProjectService: projectService,
		TOTPService:    NewTOTPService(storages.TOTPRepository, cfg, clk, logger),
		AppInfoService: appInfoService,
	}, nil
}
