package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// MigrateConfig configures cmd/migrate.
type MigrateConfig struct {
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL" env-required:"true"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// LoadMigrateConfig reads path when it exists and falls back to the environment.
func LoadMigrateConfig(path string) (*MigrateConfig, error) {
	var cfg MigrateConfig
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err == nil {
			return &cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load migrate config: %w", err)
	}
	return &cfg, nil
}
