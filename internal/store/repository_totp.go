package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
)

// totpRepository keeps the single row of "totp_settings".
type totpRepository struct {
	*DB
	logger *logger.Logger
}

func NewTOTPRepository(db *DB, logger *logger.Logger) TOTPRepository {
	logger.Debug().Msg("creating totp repository")
	return &totpRepository{
		DB:     db,
		logger: logger,
	}
}

// GetTOTPSettings returns the stored enrollment or [ErrTOTPSettingsNotFound].
func (r *totpRepository) GetTOTPSettings(ctx context.Context) (models.TOTPSettings, error) {
	query, args, err := buildGetTOTPSettingsQuery(r.builder())
	if err != nil {
		return models.TOTPSettings{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var settings models.TOTPSettings
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.Secret,
		&settings.Enabled,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TOTPSettings{}, ErrTOTPSettingsNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "totpRepository.GetTOTPSettings").Msg("failed to read totp settings")
		return models.TOTPSettings{}, r.queryError(err)
	}

	return settings, nil
}

// SaveTOTPSettings inserts or overwrites the enrollment.
func (r *totpRepository) SaveTOTPSettings(ctx context.Context, settings models.TOTPSettings) error {
	query, args, err := buildUpsertTOTPSettingsQuery(r.builder(), settings)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "totpRepository.SaveTOTPSettings").Msg("failed to save totp settings")
		return r.statementError(err)
	}
	return nil
}

// DeleteTOTPSettings removes the enrollment. Deleting a missing row is not an
// error.
func (r *totpRepository) DeleteTOTPSettings(ctx context.Context) error {
	query, args, err := buildDeleteTOTPSettingsQuery(r.builder())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "totpRepository.DeleteTOTPSettings").Msg("failed to delete totp settings")
		return r.statementError(err)
	}
	return nil
}
