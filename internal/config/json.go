package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		GrantDuration Duration `json:"grant_duration"`
		APIToken      string   `json:"api_token"`
		TOTPIssuer    string   `json:"totp_issuer"`
		TOTPAccount   string   `json:"totp_account"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		APIToken       string   `json:"api_token"`
	} `json:"adapter,omitempty"`

	Vault struct {
		IdleTimeout  Duration `json:"idle_timeout"`
		RevealWindow Duration `json:"reveal_window"`
		LogFile      string   `json:"log_file"`
	} `json:"vault,omitempty"`

	Workers struct {
		ReplayCleanupInterval Duration `json:"replay_cleanup_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			GrantDuration: time.Duration(jsonCfg.App.GrantDuration),
			APIToken:      jsonCfg.App.APIToken,
			TOTPIssuer:    jsonCfg.App.TOTPIssuer,
			TOTPAccount:   jsonCfg.App.TOTPAccount,
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{DB: DB{DSN: jsonCfg.Storage.DB.DSN}},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			APIToken:       jsonCfg.Adapter.APIToken,
		},
		Vault: Vault{
			IdleTimeout:  time.Duration(jsonCfg.Vault.IdleTimeout),
			RevealWindow: time.Duration(jsonCfg.Vault.RevealWindow),
			LogFile:      jsonCfg.Vault.LogFile,
		},
		Workers: Workers{
			ReplayCleanupInterval: time.Duration(jsonCfg.Workers.ReplayCleanupInterval),
		},
	}, nil
}

// Duration unmarshals from strings like "1h" or "30s", or from nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
