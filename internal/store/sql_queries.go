package store

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-vault-gate/models"
)

const (
	secretsTable      = "secrets"
	projectsTable     = "projects"
	totpSettingsTable = "totp_settings"

	// totpSettingsID is the id of the only totp_settings row.
	totpSettingsID int64 = 1
)

var secretColumns = []string{
	"id",
	"name",
	"category",
	"encrypted_value",
	"iv",
	"salt",
	"notes",
	"project_id",
	"created_at",
	"updated_at",
}

var projectColumns = []string{
	"id",
	"name",
	"description",
	"color",
	"icon",
	"created_at",
	"updated_at",
}

var totpSettingsColumns = []string{
	"id",
	"secret",
	"enabled",
	"created_at",
	"updated_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func buildListSecretsQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(secretColumns...).
		From(secretsTable).
		OrderBy("created_at DESC", "id").
		ToSql()
}

func buildInsertSecretQuery(b squirrel.StatementBuilderType, secret models.Secret) (string, []any, error) {
	return b.Insert(secretsTable).
		Columns(secretColumns...).
		Values(
			secret.ID,
			secret.Name,
			string(secret.Category),
			secret.Ciphertext,
			secret.IV,
			secret.Salt,
			secret.Notes,
			secret.ProjectID,
			secret.CreatedAt,
			secret.UpdatedAt,
		).
		Suffix(returning(secretColumns)).
		ToSql()
}

// buildUpdateSecretQuery replaces the metadata and the whole ciphered triple.
func buildUpdateSecretQuery(b squirrel.StatementBuilderType, secret models.Secret) (string, []any, error) {
	return b.Update(secretsTable).
		Set("name", secret.Name).
		Set("category", string(secret.Category)).
		Set("encrypted_value", secret.Ciphertext).
		Set("iv", secret.IV).
		Set("salt", secret.Salt).
		Set("notes", secret.Notes).
		Set("project_id", secret.ProjectID).
		Set("updated_at", secret.UpdatedAt).
		Where(squirrel.Eq{"id": secret.ID}).
		Suffix(returning(secretColumns)).
		ToSql()
}

func buildDeleteSecretQuery(b squirrel.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(secretsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

// buildUnassignSecretsQuery nulls project_id of every secret in the project.
func buildUnassignSecretsQuery(b squirrel.StatementBuilderType, projectID string) (string, []any, error) {
	return b.Update(secretsTable).
		Set("project_id", nil).
		Where(squirrel.Eq{"project_id": projectID}).
		ToSql()
}

func buildListProjectsQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(projectColumns...).
		From(projectsTable).
		OrderBy("name", "id").
		ToSql()
}

func buildInsertProjectQuery(b squirrel.StatementBuilderType, project models.Project) (string, []any, error) {
	return b.Insert(projectsTable).
		Columns(projectColumns...).
		Values(
			project.ID,
			project.Name,
			project.Description,
			project.Color,
			project.Icon,
			project.CreatedAt,
			project.UpdatedAt,
		).
		Suffix(returning(projectColumns)).
		ToSql()
}

func buildUpdateProjectQuery(b squirrel.StatementBuilderType, project models.Project) (string, []any, error) {
	return b.Update(projectsTable).
		Set("name", project.Name).
		Set("description", project.Description).
		Set("color", project.Color).
		Set("icon", project.Icon).
		Set("updated_at", project.UpdatedAt).
		Where(squirrel.Eq{"id": project.ID}).
		Suffix(returning(projectColumns)).
		ToSql()
}

func buildDeleteProjectQuery(b squirrel.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(projectsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildGetTOTPSettingsQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(totpSettingsColumns...).
		From(totpSettingsTable).
		Where(squirrel.Eq{"id": totpSettingsID}).
		ToSql()
}

// buildUpsertTOTPSettingsQuery writes the single settings row. ON CONFLICT
// ... DO UPDATE works on PostgreSQL and SQLite alike.
func buildUpsertTOTPSettingsQuery(b squirrel.StatementBuilderType, settings models.TOTPSettings) (string, []any, error) {
	return b.Insert(totpSettingsTable).
		Columns(totpSettingsColumns...).
		Values(totpSettingsID, settings.Secret, settings.Enabled, settings.CreatedAt, settings.UpdatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET secret = excluded.secret, enabled = excluded.enabled, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteTOTPSettingsQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Delete(totpSettingsTable).
		Where(squirrel.Eq{"id": totpSettingsID}).
		ToSql()
}
