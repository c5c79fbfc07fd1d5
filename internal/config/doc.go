// Package config loads, merges and validates configuration for the vault
// client and the reference backend.
//
// Sources, later ones overriding earlier non-zero fields:
//  1. built-in defaults
//  2. .env file and environment variables
//  3. command-line flags
//  4. JSON config file
//
// Binaries call [GetClientConfig] or [GetServerConfig].
package config
