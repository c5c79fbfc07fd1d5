package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-vault-gate/internal/logger"
	"github.com/MKhiriev/go-vault-gate/models"
)

// projectRepository is the SQL implementation of [ProjectRepository] over
// the "projects" table.
type projectRepository struct {
	*DB
	logger *logger.Logger
}

func NewProjectRepository(db *DB, logger *logger.Logger) ProjectRepository {
	logger.Debug().Msg("creating project repository")
	return &projectRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *projectRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProjectsQuery(r.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "projectRepository.ListProjects").Msg("failed to execute query")
		return nil, r.queryError(err)
	}
	defer rows.Close()

	projects := make([]models.Project, 0, 8)
	for rows.Next() {
		project, scanErr := scanProject(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "projectRepository.ListProjects").Msg("failed to scan project row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		projects = append(projects, project)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "projectRepository.ListProjects").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return projects, nil
}

func (r *projectRepository) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertProjectQuery(r.builder(), project)
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanProject(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "projectRepository.CreateProject").Str("project_id", project.ID).Msg("failed to insert project")
		return models.Project{}, r.statementError(err)
	}

	return created, nil
}

// UpdateProject replaces name, description, color and icon. Unknown id →
// [ErrProjectNotFound].
func (r *projectRepository) UpdateProject(ctx context.Context, project models.Project) (models.Project, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProjectQuery(r.builder(), project)
	if err != nil {
		return models.Project{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanProject(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, ErrProjectNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "projectRepository.UpdateProject").Str("project_id", project.ID).Msg("failed to update project")
		return models.Project{}, r.statementError(err)
	}

	return updated, nil
}

// DeleteProject first sets project_id to NULL on the project's secrets, then
// removes the project, in one transaction. Secrets are never deleted with
// their project. Unknown id → [ErrProjectNotFound] and nothing changes.
func (r *projectRepository) DeleteProject(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).With().Str("func", "projectRepository.DeleteProject").Str("project_id", id).Logger()

	unassignQuery, unassignArgs, err := buildUnassignSecretsQuery(r.builder(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteQuery, deleteArgs, err := buildDeleteProjectQuery(r.builder(), id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	unassigned, err := tx.ExecContext(ctx, unassignQuery, unassignArgs...)
	if err != nil {
		log.Err(err).Msg("failed to unassign secrets")
		return r.statementError(err)
	}

	result, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...)
	if err != nil {
		log.Err(err).Msg("failed to delete project")
		return r.statementError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	if n, countErr := unassigned.RowsAffected(); countErr == nil {
		log.Debug().Int64("unassigned_secrets", n).Msg("project deleted")
	}
	return nil
}

func scanProject(row rowScanner) (models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Color,
		&project.Icon,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	return project, err
}
