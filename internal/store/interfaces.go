// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the backend's records: encrypted secrets, projects
// and the TOTP enrollment.
//
// The same repositories run on PostgreSQL (pgx) and SQLite (mattn/go-sqlite3).
// The dialect is picked from the DSN; queries are built with squirrel using
// the matching placeholder format, and driver errors are classified per
// dialect so that repositories can map them to the sentinels in errors.go.
package store

import (
	"context"

	"github.com/MKhiriev/go-vault-gate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SecretRepository stores secret records. It only ever sees ciphertext.
type SecretRepository interface {
	ListSecrets(ctx context.Context) ([]models.Secret, error)
	CreateSecret(ctx context.Context, secret models.Secret) (models.Secret, error)
	// UpdateSecret replaces every mutable column of the record with secret.ID.
	UpdateSecret(ctx context.Context, secret models.Secret) (models.Secret, error)
	DeleteSecret(ctx context.Context, id string) error
}

// ProjectRepository stores projects.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	CreateProject(ctx context.Context, project models.Project) (models.Project, error)
	UpdateProject(ctx context.Context, project models.Project) (models.Project, error)
	// DeleteProject unassigns the project's secrets and removes it in one
	// transaction.
	DeleteProject(ctx context.Context, id string) error
}

// TOTPRepository stores the single TOTP enrollment of the vault.
type TOTPRepository interface {
	GetTOTPSettings(ctx context.Context) (models.TOTPSettings, error)
	SaveTOTPSettings(ctx context.Context, settings models.TOTPSettings) error
	DeleteTOTPSettings(ctx context.Context) error
}

// ErrorClassificator maps a driver error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
