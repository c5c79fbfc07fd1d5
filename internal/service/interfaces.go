package service

import (
	"context"

	"github.com/MKhiriev/go-vault-gate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock -exclude_interfaces=VaultServiceWrapper,ProjectServiceWrapper

// VaultService manages encrypted secret records on the backend. Payloads
// arrive already encrypted; the backend never sees a plaintext value.
type VaultService interface {
	ListSecrets(ctx context.Context) ([]models.Secret, error)
	CreateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error)
	UpdateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error)
	DeleteSecret(ctx context.Context, id string) error
}

type ProjectService interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error)
	UpdateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// TOTPService is the backend side of the second factor.
type TOTPService interface {
	Status(ctx context.Context) (models.TOTPStatus, error)
	Setup(ctx context.Context) (models.TOTPSetup, error)
	Verify(ctx context.Context, code string) (models.TOTPResult, error)
	Validate(ctx context.Context, code string) (models.TOTPResult, error)
	Disable(ctx context.Context, code string) (models.TOTPResult, error)

	// GrantRequired reports whether record routes must carry a grant.
	GrantRequired(ctx context.Context) (bool, error)
	// ValidateGrant returns ErrInvalidGrant for a missing, expired or forged
	// grant token.
	ValidateGrant(token string) error
	// SweepReplayCache evicts spent codes whose replay window has passed and
	// returns how many were evicted.
	SweepReplayCache() int
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}

// VaultServiceWrapper defines middleware composition for VaultService.
// Implementations wrap an existing VaultService to add behavior such as
// validating.
type VaultServiceWrapper interface {
	Wrap(VaultService) VaultService
}

// ProjectServiceWrapper is the ProjectService counterpart of VaultServiceWrapper.
type ProjectServiceWrapper interface {
	Wrap(ProjectService) ProjectService
}

// IDGenerator issues record ids.
type IDGenerator interface {
	Generate() string
}
