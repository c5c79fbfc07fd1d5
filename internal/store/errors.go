package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSecretNotFound is returned when an update or delete targets a secret
	// id that does not exist.
	ErrSecretNotFound = errors.New("secret was not found")

	// ErrProjectNotFound is returned when a project id does not exist, either
	// as the target of an operation or as the project_id of a secret.
	ErrProjectNotFound = errors.New("project was not found")

	// ErrTOTPSettingsNotFound is returned when no TOTP enrollment was ever
	// stored.
	ErrTOTPSettingsNotFound = errors.New("totp settings were not found")

	// ErrDatabaseUnavailable is returned when the driver reports a
	// connection-level failure.
	ErrDatabaseUnavailable = errors.New("database is unavailable")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
