// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the vault backend API.
//
// [ServerAdapter] covers the record routes (/vault, /vault/projects) and the
// TOTP route (/vault/totp). The HTTP implementation keeps the TOTP grant
// returned by verify and validate and presents it on record routes.
//
// HTTP failures are mapped to the sentinels in errors.go so callers can use
// [errors.Is] without looking at status codes.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-vault-gate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// VaultAdapter is the encrypted record store as seen from the client. It never
// receives plaintext.
type VaultAdapter interface {
	ListSecrets(ctx context.Context) ([]models.Secret, error)
	CreateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error)
	// UpdateSecret replaces the whole record identified by payload.ID.
	UpdateSecret(ctx context.Context, payload models.SecretPayload) (models.Secret, error)
	DeleteSecret(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error)
	UpdateProject(ctx context.Context, payload models.ProjectPayload) (models.Project, error)
	// DeleteProject removes the project. The backend unassigns its secrets.
	DeleteProject(ctx context.Context, id string) error
}

// TOTPAdapter is the TOTP service as seen from the client.
type TOTPAdapter interface {
	Status(ctx context.Context) (models.TOTPStatus, error)
	Setup(ctx context.Context) (models.TOTPSetup, error)
	// Verify confirms enrollment with the first code.
	Verify(ctx context.Context, code string) (models.TOTPResult, error)
	// Validate checks a code for the current process.
	Validate(ctx context.Context, code string) (models.TOTPResult, error)
	Disable(ctx context.Context, code string) (models.TOTPResult, error)
}

// ServerAdapter is everything the client needs from the backend.
type ServerAdapter interface {
	VaultAdapter
	TOTPAdapter
}
