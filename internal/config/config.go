// Package config loads service configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Listen   string `env:"DIALOQ_LISTEN" envDefault:"0.0.0.0:3010"`
	DBPath   string `env:"DIALOQ_DB_PATH" envDefault:"data/dialoq.db"`
	SeedFile string `env:"DIALOQ_SEED_FILE" envDefault:"config/dialogs.json"`

	// Provider selects the default translation engine.
	Provider        string `env:"DIALOQ_PROVIDER" envDefault:"mymemory"`
	ProviderBaseURL string `env:"DIALOQ_PROVIDER_URL"`
	ProviderAPIKey  string `env:"DIALOQ_PROVIDER_API_KEY"`

	// DefaultActor is attributed to edit history entries.
	DefaultActor string `env:"DIALOQ_DEFAULT_ACTOR" envDefault:"admin"`

	// Locale pair used by the /api/translate endpoint.
	TranslateFrom string `env:"DIALOQ_TRANSLATE_FROM" envDefault:"en"`
	TranslateTo   string `env:"DIALOQ_TRANSLATE_TO" envDefault:"es"`

	LogLevel  string `env:"DIALOQ_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"DIALOQ_LOG_FORMAT" envDefault:"json"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
