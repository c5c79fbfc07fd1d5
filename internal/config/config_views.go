package config

import (
	"fmt"
	"time"
)

// ClientConfig is what the terminal client needs.
type ClientConfig struct {
	Adapter ClientAdapter
	Vault   ClientVault
}

// ClientAdapter describes how the client reaches the backend.
type ClientAdapter struct {
	BaseURL        string
	RequestTimeout time.Duration
	APIToken       string
}

// ClientVault holds the exposure windows enforced on the client.
type ClientVault struct {
	IdleTimeout  time.Duration
	RevealWindow time.Duration
	LogFile      string
}

// ServerConfig is what the reference backend needs.
type ServerConfig struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	AllowedOrigins []string

	DSN string

	TokenSignKey  string
	TokenIssuer   string
	GrantDuration time.Duration
	APIToken      string
	TOTPIssuer    string
	TOTPAccount   string
	Version       string

	ReplayCleanupInterval time.Duration
}

// GetClientConfig loads every source and returns the validated client view.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.ClientView()
	return clientCfg, clientCfg.validate()
}

// GetServerConfig loads every source and returns the validated backend view.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := cfg.ServerView()
	return serverCfg, serverCfg.validate()
}

// ClientView maps the merged config to [ClientConfig] without validating it.
func (cfg *StructuredConfig) ClientView() *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			APIToken:       cfg.Adapter.APIToken,
		},
		Vault: ClientVault{
			IdleTimeout:  cfg.Vault.IdleTimeout,
			RevealWindow: cfg.Vault.RevealWindow,
			LogFile:      cfg.Vault.LogFile,
		},
	}
}

// ServerView maps the merged config to [ServerConfig] without validating it.
func (cfg *StructuredConfig) ServerView() *ServerConfig {
	return &ServerConfig{
		HTTPAddress:           cfg.Server.HTTPAddress,
		RequestTimeout:        cfg.Server.RequestTimeout,
		AllowedOrigins:        cfg.Server.AllowedOrigins,
		DSN:                   cfg.Storage.DB.DSN,
		TokenSignKey:          cfg.App.TokenSignKey,
		TokenIssuer:           cfg.App.TokenIssuer,
		GrantDuration:         cfg.App.GrantDuration,
		APIToken:              cfg.App.APIToken,
		TOTPIssuer:            cfg.App.TOTPIssuer,
		TOTPAccount:           cfg.App.TOTPAccount,
		Version:               cfg.App.Version,
		ReplayCleanupInterval: cfg.Workers.ReplayCleanupInterval,
	}
}
