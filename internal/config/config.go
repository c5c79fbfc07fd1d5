// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the merged configuration shared by the vault client and
// the reference backend. Each binary reads only the view it needs
// ([GetClientConfig] or [GetServerConfig]).
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Server  Server  `envPrefix:"SERVER_"`
	Adapter Adapter `envPrefix:"ADAPTER_"`
	Vault   Vault   `envPrefix:"VAULT_"`
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is an optional JSON file merged on top of env and flags.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds backend settings for TOTP and grant tokens.
type App struct {
	// TokenSignKey signs TOTP grant tokens and keys the replay cache.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of grant tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// GrantDuration is how long an accepted TOTP code unlocks the vault routes.
	// Env: APP_GRANT_DURATION
	GrantDuration time.Duration `env:"GRANT_DURATION"`

	// APIToken, when set, must be presented as a bearer token on every
	// /vault route. It is owned by the hosting application.
	// Env: APP_API_TOKEN
	APIToken string `env:"API_TOKEN"`

	// TOTPIssuer and TOTPAccount label the enrollment shown in
	// authenticator apps.
	// Env: APP_TOTP_ISSUER, APP_TOTP_ACCOUNT
	TOTPIssuer  string `env:"TOTP_ISSUER"`
	TOTPAccount string `env:"TOTP_ACCOUNT"`

	// Version is reported by /api/version when no build version was linked in.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the backend persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the record store connection. A postgres:// or postgresql:// DSN
// selects PostgreSQL, anything else is treated as a SQLite file.
// Env: STORAGE_DB_DATABASE_URI
type DB struct {
	DSN string `env:"DATABASE_URI"`
}

// Server holds the backend listener settings.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// AllowedOrigins lists CORS origins of the dashboard, comma separated.
	// Env: SERVER_ALLOWED_ORIGINS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
}

// Adapter holds the client's view of the backend.
type Adapter struct {
	// HTTPAddress is the backend base URL, e.g. "http://localhost:8080".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	// Env: ADAPTER_API_TOKEN
	APIToken string `env:"API_TOKEN"`
}

// Vault holds the client exposure windows.
type Vault struct {
	// IdleTimeout locks the vault after this long without interaction.
	// Env: VAULT_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`
	// RevealWindow bounds both on-screen reveal and clipboard lifetime.
	// Env: VAULT_REVEAL_WINDOW
	RevealWindow time.Duration `env:"REVEAL_WINDOW"`
	// LogFile is where the terminal client writes its log.
	// Env: VAULT_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Workers holds background job settings of the backend.
type Workers struct {
	// ReplayCleanupInterval is how often spent TOTP codes are evicted.
	// Env: WORKERS_REPLAY_CLEANUP_INTERVAL
	ReplayCleanupInterval time.Duration `env:"REPLAY_CLEANUP_INTERVAL"`
}

// GetStructuredConfig loads and merges every source. Later sources override
// earlier ones for non-zero fields:
//  1. built-in defaults
//  2. .env file (loaded into the process environment) and environment
//  3. command-line flags
//  4. JSON file (path taken from 2 or 3)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
