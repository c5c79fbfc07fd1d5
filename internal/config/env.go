// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvPathEnv names the variable that points at an alternative .env file.
const DotEnvPathEnv = "DOTENV_PATH"

// parseEnv populates cfg from the environment via the `env` and `envPrefix`
// tags of [StructuredConfig].
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// loadDotEnv loads a .env file into the process environment. Variables that
// are already set win. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnv)
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}
