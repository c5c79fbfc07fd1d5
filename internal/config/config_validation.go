// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if !strings.HasPrefix(cfg.Adapter.BaseURL, "http://") && !strings.HasPrefix(cfg.Adapter.BaseURL, "https://") {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Vault.IdleTimeout <= 0 || cfg.Vault.RevealWindow <= 0 {
		return ErrInvalidVaultConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.TokenSignKey == "" || cfg.TokenIssuer == "" || cfg.GrantDuration <= 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.TOTPIssuer == "" || cfg.TOTPAccount == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.ReplayCleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
