package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-gate/internal/clock"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/internal/store"
	"github.com/MKhiriev/go-vault-gate/models"
)

type vaultService struct {
	secretRepository store.SecretRepository
	ids              IDGenerator
	clock            clock.Clock

	logger *logger.Logger
}

func NewVaultService(secretRepository store.SecretRepository, ids IDGenerator, clk clock.Clock, logger *logger.Logger) VaultService {
	return &vaultService{
		secretRepository: secretRepository,
		ids:              ids,
		clock:            clk,
		logger:           logger,
	}
}

func (s *vaultService) ListSecrets(ctx context.Context) ([]models.Secret, error) {
	secrets, err := s.secretRepository.ListSecrets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list secrets: %w", err)
	}
	return secrets, nil
}

func (s *vaultService) CreateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error) {
	now := s.clock.Now().UTC()
	secret := secretFromPayload(payload)
	secret.ID = s.ids.Generate()
	secret.CreatedAt = now
	secret.UpdatedAt = now

	created, err := s.secretRepository.CreateSecret(ctx, secret)
	if err != nil {
		return models.Secret{}, fmt.Errorf("create secret: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("secret_id", created.ID).Msg("secret created")
	return created, nil
}

func (s *vaultService) UpdateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error) {
	secret := secretFromPayload(payload)
	secret.UpdatedAt = s.clock.Now().UTC()

	updated, err := s.secretRepository.UpdateSecret(ctx, secret)
	if err != nil {
		return models.Secret{}, fmt.Errorf("update secret %s: %w", payload.ID, err)
	}

	logger.FromContext(ctx).Debug().Str("secret_id", updated.ID).Msg("secret updated")
	return updated, nil
}

func (s *vaultService) DeleteSecret(ctx context.Context, id string) error {
	if err := s.secretRepository.DeleteSecret(ctx, id); err != nil {
		return fmt.Errorf("delete secret %s: %w", id, err)
	}

	logger.FromContext(ctx).Debug().Str("secret_id", id).Msg("secret deleted")
	return nil
}

func secretFromPayload(payload models.SecretPayload) models.Secret {
	return models.Secret{
		ID:             payload.ID,
		Name:           strings.TrimSpace(payload.Name),
		Category:       payload.Category,
		CipheredTriple: payload.CipheredTriple,
		Notes:          payload.Notes,
		ProjectID:      payload.ProjectID,
	}
}
