package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-vault-gate/internal/validators"
	"github.com/MKhiriev/go-vault-gate/models"
)

// VaultValidationService rejects malformed secret payloads before they reach
// the wrapped VaultService.
type VaultValidationService struct {
	inner     VaultService
	validator validators.Validator
}

func NewVaultValidationService() VaultServiceWrapper {
	return &VaultValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *VaultValidationService) ListSecrets(ctx context.Context) ([]models.Secret, error) {
	return v.inner.ListSecrets(ctx)
}

func (v *VaultValidationService) CreateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error) {
	if err := v.validator.Validate(ctx, payload); err != nil {
		return models.Secret{}, fmt.Errorf("error during secret validation before saving: %w", err)
	}

	return v.inner.CreateSecret(ctx, payload)
}

func (v *VaultValidationService) UpdateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error) {
	if err := v.validator.Validate(ctx, payload, validators.FieldID); err != nil {
		return models.Secret{}, fmt.Errorf("error during secret validation before updating: %w", err)
	}
	if err := v.validator.Validate(ctx, payload); err != nil {
		return models.Secret{}, fmt.Errorf("error during secret validation before updating: %w", err)
	}

	return v.inner.UpdateSecret(ctx, payload)
}

func (v *VaultValidationService) DeleteSecret(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("error during secret validation before deleting: %w", validators.ErrEmptyID)
	}

	return v.inner.DeleteSecret(ctx, id)
}

func (v *VaultValidationService) Wrap(wrapper VaultService) VaultService {
	v.inner = wrapper
	return v
}

// ProjectValidationService rejects malformed project payloads before they
// reach the wrapped ProjectService.
type ProjectValidationService struct {
	inner     ProjectService
	validator validators.Validator
}

func NewProjectValidationService() ProjectServiceWrapper {
	return &ProjectValidationService{
		validator: validators.NewVaultValidator(),
	}
}

func (v *ProjectValidationService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return v.inner.ListProjects(ctx)
}

func (v *ProjectValidationService) CreateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	if err := v.validator.Validate(ctx, payload); err != nil {
		return models.Project{}, fmt.Errorf("error during project validation before saving: %w", err)
	}

	return v.inner.CreateProject(ctx, payload)
}

func (v *ProjectValidationService) UpdateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error) {
	if err := v.validator.Validate(ctx, payload, validators.FieldID, validators.FieldName, validators.FieldColor); err != nil {
		return models.Project{}, fmt.Errorf("error during project validation before updating: %w", err)
	}

	return v.inner.UpdateProject(ctx, payload)
}

func (v *ProjectValidationService) DeleteProject(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("error during project validation before deleting: %w", validators.ErrEmptyID)
	}

	return v.inner.DeleteProject(ctx, id)
}

func (v *ProjectValidationService) Wrap(wrapper ProjectService) ProjectService {
	v.inner = wrapper
	return v
}
