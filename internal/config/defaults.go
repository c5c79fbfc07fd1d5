package config

import "time"

const (
	DefaultIdleTimeout   = 5 * time.Minute
	DefaultRevealWindow  = 30 * time.Second
	DefaultGrantDuration = 10 * time.Minute
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-vault-gate",
			GrantDuration: DefaultGrantDuration,
			TOTPIssuer:    "Vault",
			TOTPAccount:   "owner",
		},
		Storage: Storage{DB: DB{DSN: "vault.db"}},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Vault: Vault{
			IdleTimeout:  DefaultIdleTimeout,
			RevealWindow: DefaultRevealWindow,
		},
		Workers: Workers{ReplayCleanupInterval: 30 * time.Second},
	}
}
