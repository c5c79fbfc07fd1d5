package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-vault-gate/internal/config"
	"github.com/MKhiriev/go-vault-gate/internal/logger"
)

// Storages groups the backend repositories.
type Storages struct {
	SecretRepository  SecretRepository
	ProjectRepository ProjectRepository
	TOTPRepository    TOTPRepository

	db *DB
}

// NewStorages connects to the database named by cfg, runs pending migrations
// and returns the repositories.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectDB(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		SecretRepository:  NewSecretRepository(db, logger),
		ProjectRepository: NewProjectRepository(db, logger),
		TOTPRepository:    NewTOTPRepository(db, logger),
		db:                db,
	}, nil
}

// Close closes the underlying connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
