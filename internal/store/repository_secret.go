package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
)

// secretRepository is the SQL implementation of [SecretRepository] over the
// "secrets" table.
//
// Every method obtains a context-scoped logger via [logger.FromContext] so
// that database failures carry the request's trace id.
type secretRepository struct {
	*DB
	logger *logger.Logger
}

// NewSecretRepository constructs a [SecretRepository] backed by db.
func NewSecretRepository(db *DB, logger *logger.Logger) SecretRepository {
	logger.Debug().Msg("creating secret repository")
	return &secretRepository{
		DB:     db,
		logger: logger,
	}
}

// ListSecrets returns every secret, newest first. An empty table yields an
// empty slice.
func (r *secretRepository) ListSecrets(ctx context.Context) ([]models.Secret, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListSecretsQuery(r.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "secretRepository.ListSecrets").Msg("failed to execute query")
		return nil, r.queryError(err)
	}
	defer rows.Close()

	secrets := make([]models.Secret, 0, 32)
	for rows.Next() {
		secret, scanErr := scanSecret(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "secretRepository.ListSecrets").Msg("failed to scan secret row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		secrets = append(secrets, secret)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "secretRepository.ListSecrets").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return secrets, nil
}

// CreateSecret inserts secret and returns the stored row.
//
// A project_id that references no project → [ErrProjectNotFound].
func (r *secretRepository) CreateSecret(ctx context.Context, secret models.Secret) (models.Secret, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertSecretQuery(r.builder(), secret)
	if err != nil {
		return models.Secret{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanSecret(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "secretRepository.CreateSecret").Str("secret_id", secret.ID).Msg("failed to insert secret")
		return models.Secret{}, r.statementError(err)
	}

	return created, nil
}

// UpdateSecret replaces the record and returns the stored row.
//
// Unknown id → [ErrSecretNotFound]; unknown project_id → [ErrProjectNotFound].
func (r *secretRepository) UpdateSecret(ctx context.Context, secret models.Secret) (models.Secret, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateSecretQuery(r.builder(), secret)
	if err != nil {
		return models.Secret{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanSecret(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Secret{}, ErrSecretNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "secretRepository.UpdateSecret").Str("secret_id", secret.ID).Msg("failed to update secret")
		return models.Secret{}, r.statementError(err)
	}

	return updated, nil
}

// DeleteSecret removes the record. Unknown id → [ErrSecretNotFound].
func (r *secretRepository) DeleteSecret(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteSecretQuery(r.builder(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "secretRepository.DeleteSecret").Str("secret_id", id).Msg("failed to delete secret")
		return r.statementError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrSecretNotFound
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSecret(row rowScanner) (models.Secret, error) {
	var (
		secret    models.Secret
		category  string
		projectID sql.NullString
	)

	err := row.Scan(
		&secret.ID,
		&secret.Name,
		&category,
		&secret.Ciphertext,
		&secret.IV,
		&secret.Salt,
		&secret.Notes,
		&projectID,
		&secret.CreatedAt,
		&secret.UpdatedAt,
	)
	if err != nil {
		return models.Secret{}, err
	}

	secret.Category = models.Category(category)
	if projectID.Valid {
		id := projectID.String
		secret.ProjectID = &id
	}
	return secret, nil
}

// queryError wraps a failed SELECT.
func (db *DB) queryError(err error) error {
	if db.classify(err) == Unavailable {
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

// statementError wraps a failed INSERT, UPDATE or DELETE.
func (db *DB) statementError(err error) error {
	switch db.classify(err) {
	case ForeignKeyViolation:
		return ErrProjectNotFound
	case Unavailable:
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}
