package config

import "errors"

// Validation errors returned by the client and server config views.
var (
	// ErrInvalidAdapterConfigs: missing or non-http backend URL, or no timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidVaultConfigs: idle timeout or reveal window not positive.
	ErrInvalidVaultConfigs = errors.New("invalid vault configuration")
	// ErrInvalidServerConfigs: missing listen address or request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs: empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs: grant token or TOTP labels incomplete.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs: replay cleanup interval not positive.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
