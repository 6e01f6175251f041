package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ovasilenko/breedbook/internal/flagx"
)

// parseEnv overlays Config fields from environment variables, optionally
// loading a .env file first. An explicit -env-file path must exist; the
// implicit ./.env is loaded only when present.
func parseEnv(cfg *Config) error {
	path := flagx.EnvFileFlags()
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}
